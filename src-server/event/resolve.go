package event

import (
	"sort"
	"time"
)

// occursOnDate reports whether a one-off event falls on the target date.
// The comparison is deliberately done on formatted text, both sides rendered
// through the canonical layout: it sidesteps timezone drift at the cost of
// silently excluding events stored in a non-canonical format. Keep every date
// equality check in the codebase going through here.
func occursOnDate(e Event, target time.Time) bool {
	return e.OccursOn == CanonicalDateText(target)
}

// matchesWeekday reports whether a recurring event applies on the target
// date's weekday.
func matchesWeekday(e Event, target time.Time) bool {
	day := WeekdayOf(target)
	for _, d := range e.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ResolveOn returns the events applicable to the target date, recurring
// entries first, then one-off entries, stable-sorted by (kind, sort key).
// An empty result is a normal outcome, not a failure. The input is never
// mutated.
func ResolveOn(events []Event, target time.Time) []Event {
	matched := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Kind == KindRecurring && matchesWeekday(e, target) {
			matched = append(matched, e)
		}
	}
	for _, e := range events {
		if e.Kind == KindOneOff && occursOnDate(e, target) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Kind != matched[j].Kind {
			return matched[i].Kind.rank() < matched[j].Kind.rank()
		}
		return matched[i].SortKey < matched[j].SortKey
	})
	return matched
}
