package utils

import (
	"strings"
	"time"

	"agendabot/src-server/event"
)

// AllEvents returns the weekly schedule followed by the stored entries, the
// order the resolver expects them in.
func (as *AppState) AllEvents() []event.Event {
	return append(append([]event.Event{}, as.Schedule.Events...), as.EventStore.All()...)
}

// DescribeDate resolves the events applicable to the target date and renders
// them one per line. An empty string means nothing happens that day, which is
// a normal outcome. A non-nil error is a renderer misconfiguration; callers
// log it and show a generic failure.
func (as *AppState) DescribeDate(events []event.Event, target time.Time) (string, error) {
	var lines []string
	for _, e := range event.ResolveOn(events, target) {
		text, err := as.Formats.Render(e, &target, as.RenderCtx)
		if err != nil {
			return "", err
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"), nil
}
