package event

import "time"

type Kind string

const (
	// KindRecurring is a weekly class-schedule entry; it matches any date whose
	// weekday belongs to the event's weekday set.
	KindRecurring Kind = "recurrente"
	// KindOneOff is a single-date calendar entry.
	KindOneOff Kind = "eventual"
)

func (k Kind) Valid() bool {
	return k == KindRecurring || k == KindOneOff
}

// rank keeps recurring entries ahead of one-off entries when sorting a day.
func (k Kind) rank() int {
	if k == KindRecurring {
		return 0
	}
	return 1
}

// Weekday is one of the fixed 7 short names, week starting Sunday.
type Weekday string

const (
	Sunday    Weekday = "dom"
	Monday    Weekday = "lun"
	Tuesday   Weekday = "mar"
	Wednesday Weekday = "mie"
	Thursday  Weekday = "jue"
	Friday    Weekday = "vie"
	Saturday  Weekday = "sab"
)

// Weekdays lists the enumeration in week order, index-aligned with time.Weekday.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func (w Weekday) Valid() bool {
	for _, known := range Weekdays {
		if w == known {
			return true
		}
	}
	return false
}

// WeekdayOf maps a calendar date to its short name.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[int(t.Weekday())]
}

// Event is a calendar entry, either recurring (weekly pattern) or one-off
// (single date). Events are built by the Factory or loaded from the schedule
// config, never assembled by hand.
type Event struct {
	// ID is the position inside the store, assigned on append and stable for
	// the lifetime of the store. Schedule entries keep the zero value; they
	// are never stored.
	ID int

	Kind  Kind
	Title string

	// OccursOn is the canonical date text (one-off events only).
	OccursOn string
	// Days is the weekday set (recurring events only, non-empty).
	Days []Weekday

	// SortKey orders same-day events; class time for schedule entries, the
	// canonical date text for one-off entries.
	SortKey string

	// FormatterTag picks the renderer; blank means the default one.
	FormatterTag string
}

// Patch carries the fields an edit overwrites. Nil fields keep the target's
// current value, matching the original bot's field-copy loop: an edited event
// keeps its formatter tag and weekday set.
type Patch struct {
	Kind     *Kind
	Title    *string
	OccursOn *string
	Days     *[]Weekday
	SortKey  *string
	// FormatterTag distinguishes "clear the tag" (pointer to "") from
	// "leave it alone" (nil).
	FormatterTag *string
}

// AsPatch turns a replacement event into the full-overwrite patch the edit
// command applies. Formatter tag and weekday set are only included when set,
// so a factory-built replacement leaves those fields of the target untouched.
func (e Event) AsPatch() Patch {
	p := Patch{
		Kind:     &e.Kind,
		Title:    &e.Title,
		OccursOn: &e.OccursOn,
		SortKey:  &e.SortKey,
	}
	if len(e.Days) > 0 {
		p.Days = &e.Days
	}
	if e.FormatterTag != "" {
		p.FormatterTag = &e.FormatterTag
	}
	return p
}
