package schedule

import (
	"fmt"
	"os"

	"agendabot/src-server/event"
	"agendabot/src-server/format"

	"gopkg.in/yaml.v3"
)

// File is the on-disk domain configuration: the weekly class schedule, the
// weekday display labels, the accepted date input layouts, the daily reminder
// settings and the authorization list.
type File struct {
	// Owner receives forwarded suggestions.
	Owner string `yaml:"owner"`
	// Authorized lists the user and channel IDs allowed to run commands.
	// Empty means everyone.
	Authorized []string `yaml:"authorized"`

	// WeekdayLabels maps short names to display labels, e.g. lun: lunes.
	WeekdayLabels map[event.Weekday]string `yaml:"weekday_labels"`

	// DateFormats overrides the factory's accepted input layouts.
	DateFormats []string `yaml:"date_formats"`

	Reminder Reminder `yaml:"reminder"`

	Materias []Materia `yaml:"materias"`
}

// Reminder configures the daily broadcast.
type Reminder struct {
	// Time is the local broadcast time, "HH:MM".
	Time string `yaml:"time"`
	// Channels are the destination channel IDs.
	Channels []string `yaml:"channels"`
}

// Materia is one recurring class: a weekday set, a class time and the room
// per weekday.
type Materia struct {
	Title string                   `yaml:"title"`
	Days  []event.Weekday          `yaml:"days"`
	Time  string                   `yaml:"time"`
	Rooms map[event.Weekday]string `yaml:"rooms"`
}

// Schedule is the loaded, validated configuration.
type Schedule struct {
	File

	// Events are the materias as recurring events, in file order. They are
	// never persisted; the event store only holds chat-created entries.
	Events []event.Event
	// Rooms indexes the room tables by class title for the render context.
	Rooms map[string]map[event.Weekday]string
}

// Load reads and validates the schedule file.
func Load(path string) (*Schedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schedule.Load: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("schedule.Load: can't parse %s: %w", path, err)
	}

	labels := DefaultWeekdayLabels()
	for day, label := range file.WeekdayLabels {
		if !day.Valid() {
			return nil, fmt.Errorf("schedule.Load: unknown weekday %q in weekday_labels", day)
		}
		labels[day] = label
	}
	file.WeekdayLabels = labels

	sched := &Schedule{
		File:  file,
		Rooms: make(map[string]map[event.Weekday]string),
	}
	for _, m := range file.Materias {
		if m.Title == "" {
			return nil, fmt.Errorf("schedule.Load: materia without title")
		}
		if len(m.Days) == 0 {
			return nil, fmt.Errorf("schedule.Load: materia %q has no weekdays", m.Title)
		}
		for _, d := range m.Days {
			if !d.Valid() {
				return nil, fmt.Errorf("schedule.Load: materia %q has unknown weekday %q", m.Title, d)
			}
		}
		sched.Events = append(sched.Events, event.Event{
			Kind:         event.KindRecurring,
			Title:        m.Title,
			Days:         m.Days,
			SortKey:      m.Time,
			FormatterTag: format.MateriaTag,
		})
		if len(m.Rooms) > 0 {
			sched.Rooms[m.Title] = m.Rooms
		}
	}
	return sched, nil
}

// DefaultWeekdayLabels returns the Spanish display labels.
func DefaultWeekdayLabels() map[event.Weekday]string {
	return map[event.Weekday]string{
		event.Sunday:    "domingo",
		event.Monday:    "lunes",
		event.Tuesday:   "martes",
		event.Wednesday: "miércoles",
		event.Thursday:  "jueves",
		event.Friday:    "viernes",
		event.Saturday:  "sábado",
	}
}
