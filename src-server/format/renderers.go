package format

import (
	"fmt"
	"time"

	"agendabot/src-server/event"
)

// MateriaTag renders class-schedule entries with their room.
const MateriaTag = "materia"

// NewDefaultRegistry builds the registry with the built-in renderers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(DefaultTag, renderDefault)
	r.Register(MateriaTag, renderMateria)
	return r
}

// renderDefault describes any event as "*date:* title" markdown. For
// recurring events without a date it falls back to the sort key.
func renderDefault(e event.Event, _ *time.Time, _ Context) string {
	when := e.OccursOn
	if when == "" {
		when = e.SortKey
	}
	return fmt.Sprintf("*%s:* %s", when, e.Title)
}

// renderMateria describes a class as "[[room]] *time:* title". The room
// depends on the weekday of the target date; with no date (or no room
// configured for that day) the room prefix is dropped.
func renderMateria(e event.Event, on *time.Time, ctx Context) string {
	if on != nil {
		if rooms, ok := ctx.Rooms[e.Title]; ok {
			if room, ok := rooms[event.WeekdayOf(*on)]; ok {
				return fmt.Sprintf("[[%s]] *%s:* %s", room, e.SortKey, e.Title)
			}
		}
	}
	return fmt.Sprintf("*%s:* %s", e.SortKey, e.Title)
}
