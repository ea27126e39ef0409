package event

import (
	"strings"
	"time"
	"unicode/utf8"
)

// CanonicalDateLayout is the single textual date representation used for
// storage and equality comparison.
const CanonicalDateLayout = "02/01/2006"

// DefaultDateFormats is the ordered list of accepted input layouts, strictest
// first; the first layout that parses wins.
var DefaultDateFormats = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02/01/06",
}

const minTitleLength = 5

// CanonicalDateText renders a date through the canonical layout.
func CanonicalDateText(t time.Time) string {
	return t.Format(CanonicalDateLayout)
}

// Factory validates raw chat input and builds well-formed one-off events.
// Recurring events come from the schedule config, not from chat.
type Factory struct {
	// Formats overrides DefaultDateFormats when non-empty.
	Formats []string
}

// OneOff parses dateText against the accepted layouts and validates the
// title. Failures are *ValidationError values whose message is the reply text.
func (f *Factory) OneOff(dateText, title string) (Event, error) {
	formats := f.Formats
	if len(formats) == 0 {
		formats = DefaultDateFormats
	}

	var parsed time.Time
	var ok bool
	for _, layout := range formats {
		t, err := time.Parse(layout, dateText)
		if err == nil {
			parsed = t
			ok = true
			break
		}
	}
	if !ok {
		return Event{}, &ValidationError{Code: CodeUnrecognizedDate, DateText: dateText}
	}

	title = strings.TrimSpace(title)
	if length := utf8.RuneCountInString(title); length < minTitleLength {
		return Event{}, &ValidationError{Code: CodeTitleTooShort, TitleLength: length}
	}

	canonical := CanonicalDateText(parsed)
	return Event{
		Kind:     KindOneOff,
		Title:    title,
		OccursOn: canonical,
		// Same-day one-off entries all share the date, so this tie-break is
		// degenerate; kept for compatibility with the stored layout.
		SortKey: canonical,
	}, nil
}
