package event_test

import (
	"errors"
	"testing"

	"agendabot/src-server/event"
)

func TestFactoryRoundTrip(t *testing.T) {
	factory := &event.Factory{}

	e, err := factory.OneOff("15/03/2025", "Examen final")
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != event.KindOneOff {
		t.Error("expected one-off kind, got", e.Kind)
	}
	if e.Title != "Examen final" {
		t.Error("unexpected title", e.Title)
	}
	if e.OccursOn != "15/03/2025" {
		t.Error("unexpected date", e.OccursOn)
	}
	if e.SortKey != "15/03/2025" {
		t.Error("unexpected sort key", e.SortKey)
	}
	if len(e.Days) != 0 {
		t.Error("one-off event should have no weekday set")
	}
}

func TestFactoryNormalizesDate(t *testing.T) {
	factory := &event.Factory{}

	// unpadded input, canonical output
	e, err := factory.OneOff("5/3/2025", "Examen final")
	if err != nil {
		t.Fatal(err)
	}
	if e.OccursOn != "05/03/2025" {
		t.Error("date not normalized:", e.OccursOn)
	}
}

func TestFactoryUnrecognizedDate(t *testing.T) {
	factory := &event.Factory{}

	for _, dateText := range []string{
		"not-a-date",
		"15/13/2025",
		"15/03/2025 tarde",
		"2025/03/15",
	} {
		_, err := factory.OneOff(dateText, "Examen final")
		if err == nil {
			t.Errorf("%q: expected an error", dateText)
			continue
		}
		var validationErr *event.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("%q: expected a validation error, got %v", dateText, err)
			continue
		}
		if validationErr.Code != event.CodeUnrecognizedDate {
			t.Errorf("%q: unexpected code %s", dateText, validationErr.Code)
		}
		if validationErr.DateText != dateText {
			t.Errorf("%q: error should carry the input, got %q", dateText, validationErr.DateText)
		}
	}
}

func TestFactoryTitleTooShort(t *testing.T) {
	factory := &event.Factory{}

	_, err := factory.OneOff("15/03/2025", "Exam")
	var validationErr *event.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatal("expected a validation error, got", err)
	}
	if validationErr.Code != event.CodeTitleTooShort {
		t.Error("unexpected code", validationErr.Code)
	}
	if validationErr.TitleLength != 4 {
		t.Error("unexpected length", validationErr.TitleLength)
	}
}

func TestFactoryCustomFormats(t *testing.T) {
	factory := &event.Factory{Formats: []string{"02.01.2006"}}

	if _, err := factory.OneOff("15/03/2025", "Examen final"); err == nil {
		t.Error("default layouts should not apply when overridden")
	}
	e, err := factory.OneOff("15.03.2025", "Examen final")
	if err != nil {
		t.Fatal(err)
	}
	if e.OccursOn != "15/03/2025" {
		t.Error("date not normalized to the canonical layout:", e.OccursOn)
	}
}

func TestPatchKeepsFormatterTag(t *testing.T) {
	factory := &event.Factory{}

	replacement, err := factory.OneOff("16/03/2025", "Examen final v2")
	if err != nil {
		t.Fatal(err)
	}
	p := replacement.AsPatch()
	if p.FormatterTag != nil {
		t.Error("a factory-built replacement should not touch the formatter tag")
	}
	if p.Days != nil {
		t.Error("a factory-built replacement should not touch the weekday set")
	}
	if p.Title == nil || *p.Title != "Examen final v2" {
		t.Error("patch should carry the new title")
	}
}
