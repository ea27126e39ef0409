package event_test

import (
	"reflect"
	"testing"
	"time"

	"agendabot/src-server/event"
)

// 15/03/2025 is a Saturday.
var saturday = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestResolveRecurringByWeekday(t *testing.T) {
	algebra := event.Event{
		Kind:    event.KindRecurring,
		Title:   "Álgebra II",
		Days:    []event.Weekday{event.Monday, event.Saturday},
		SortKey: "18:00",
	}
	fisica := event.Event{
		Kind:    event.KindRecurring,
		Title:   "Física I",
		Days:    []event.Weekday{event.Tuesday},
		SortKey: "08:00",
	}

	got := event.ResolveOn([]event.Event{algebra, fisica}, saturday)
	if len(got) != 1 || got[0].Title != "Álgebra II" {
		t.Fatal("expected only the saturday class, got", got)
	}

	monday := saturday.AddDate(0, 0, 2)
	got = event.ResolveOn([]event.Event{algebra, fisica}, monday)
	if len(got) != 1 || got[0].Title != "Álgebra II" {
		t.Fatal("expected only the monday class, got", got)
	}
}

func TestResolveOneOffByDateText(t *testing.T) {
	exam := event.Event{
		Kind:     event.KindOneOff,
		Title:    "Examen final",
		OccursOn: "15/03/2025",
		SortKey:  "15/03/2025",
	}
	// stored in a non-canonical format: silently excluded, by design
	sloppy := event.Event{
		Kind:     event.KindOneOff,
		Title:    "Entrega del TP",
		OccursOn: "5/3/2025",
		SortKey:  "5/3/2025",
	}

	got := event.ResolveOn([]event.Event{exam, sloppy}, saturday)
	if len(got) != 1 || got[0].Title != "Examen final" {
		t.Fatal("expected only the canonical-format event, got", got)
	}

	if got := event.ResolveOn([]event.Event{exam}, saturday.AddDate(0, 0, 1)); len(got) != 0 {
		t.Fatal("expected no events the day after, got", got)
	}
}

func TestResolveOrdersRecurringFirst(t *testing.T) {
	events := []event.Event{
		{Kind: event.KindOneOff, Title: "Examen final", OccursOn: "15/03/2025", SortKey: "15/03/2025"},
		{Kind: event.KindRecurring, Title: "Taller", Days: []event.Weekday{event.Saturday}, SortKey: "19:00"},
		{Kind: event.KindRecurring, Title: "Álgebra II", Days: []event.Weekday{event.Saturday}, SortKey: "08:00"},
	}

	got := event.ResolveOn(events, saturday)
	if len(got) != 3 {
		t.Fatal("expected 3 events, got", len(got))
	}
	// recurring before one-off regardless of sort key, then sort key ascending
	if got[0].Title != "Álgebra II" || got[1].Title != "Taller" || got[2].Title != "Examen final" {
		t.Error("wrong order:", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestResolveIsStableForEqualKeys(t *testing.T) {
	first := event.Event{Kind: event.KindOneOff, Title: "Primero", OccursOn: "15/03/2025", SortKey: "15/03/2025"}
	second := event.Event{Kind: event.KindOneOff, Title: "Segundo", OccursOn: "15/03/2025", SortKey: "15/03/2025"}

	got := event.ResolveOn([]event.Event{first, second}, saturday)
	if len(got) != 2 || got[0].Title != "Primero" || got[1].Title != "Segundo" {
		t.Error("same-key events should keep insertion order, got", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	events := []event.Event{
		{Kind: event.KindRecurring, Title: "Taller", Days: []event.Weekday{event.Saturday}, SortKey: "19:00"},
		{Kind: event.KindOneOff, Title: "Examen final", OccursOn: "15/03/2025", SortKey: "15/03/2025"},
		{Kind: event.KindRecurring, Title: "Álgebra II", Days: []event.Weekday{event.Saturday}, SortKey: "08:00"},
	}
	snapshot := make([]event.Event, len(events))
	copy(snapshot, events)

	once := event.ResolveOn(events, saturday)
	twice := event.ResolveOn(events, saturday)
	if !reflect.DeepEqual(once, twice) {
		t.Error("resolve is not idempotent")
	}
	if !reflect.DeepEqual(events, snapshot) {
		t.Error("resolve mutated its input")
	}
}

func TestResolveEmptyInput(t *testing.T) {
	if got := event.ResolveOn(nil, saturday); len(got) != 0 {
		t.Error("expected an empty result, got", got)
	}
	if got := event.ResolveOn([]event.Event{}, saturday); len(got) != 0 {
		t.Error("expected an empty result, got", got)
	}
}

func TestWeekdayOf(t *testing.T) {
	if day := event.WeekdayOf(saturday); day != event.Saturday {
		t.Error("expected sab, got", day)
	}
	sunday := saturday.AddDate(0, 0, 1)
	if day := event.WeekdayOf(sunday); day != event.Sunday {
		t.Error("expected dom, got", day)
	}
}
