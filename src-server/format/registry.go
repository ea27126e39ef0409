package format

import (
	"time"

	"agendabot/src-server/event"
)

// DefaultTag is the renderer used when an event declares no formatter tag.
const DefaultTag = "default"

// Context is the shared, read-only rendering context handed to every
// renderer: weekday display labels, the classroom table for schedule entries
// and the configured location.
type Context struct {
	// WeekdayLabels maps short names to display labels ("lun" -> "lunes").
	WeekdayLabels map[event.Weekday]string
	// Rooms maps a class title to its room per weekday.
	Rooms map[string]map[event.Weekday]string

	Location *time.Location
}

// Renderer produces the chat text for one event. A nil date means "describe
// the event on its own", without date-specific context. Renderers are pure;
// they never touch the store or the session.
type Renderer func(e event.Event, on *time.Time, ctx Context) string

// Registry maps formatter tags to renderers. Adding a renderer is a Register
// call at startup; nothing here switches on event kinds.
type Registry struct {
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

func (r *Registry) Register(tag string, render Renderer) {
	r.renderers[tag] = render
}

// Render dispatches on the event's formatter tag, falling back to DefaultTag
// when the event declares none. An unknown tag is a *ConfigurationError:
// something registered an event pointing at a renderer nobody provides.
func (r *Registry) Render(e event.Event, on *time.Time, ctx Context) (string, error) {
	tag := e.FormatterTag
	if tag == "" {
		tag = DefaultTag
	}
	render, ok := r.renderers[tag]
	if !ok {
		return "", &event.ConfigurationError{FormatterTag: tag}
	}
	return render(e, on, ctx), nil
}
