package schedule_test

import (
	"os"
	"path/filepath"
	"testing"

	"agendabot/src-server/event"
	"agendabot/src-server/schedule"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenda.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
owner: "1234"
authorized: ["1234", "5678"]
reminder:
  time: "11:30"
  channels: ["42"]
materias:
  - title: "Álgebra II"
    days: [lun, mie]
    time: "18:00"
    rooms:
      lun: "Aula 304"
      mie: "Lab 2"
  - title: "Física I"
    days: [mar]
    time: "08:00"
`)

	sched, err := schedule.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if sched.Owner != "1234" || len(sched.Authorized) != 2 {
		t.Error("authorization config not loaded")
	}
	if sched.Reminder.Time != "11:30" || len(sched.Reminder.Channels) != 1 {
		t.Error("reminder config not loaded")
	}

	if len(sched.Events) != 2 {
		t.Fatal("expected 2 schedule events, got", len(sched.Events))
	}
	algebra := sched.Events[0]
	if algebra.Kind != event.KindRecurring {
		t.Error("schedule entries must be recurring, got", algebra.Kind)
	}
	if algebra.FormatterTag != "materia" {
		t.Error("unexpected formatter tag", algebra.FormatterTag)
	}
	if algebra.SortKey != "18:00" {
		t.Error("class time should be the sort key, got", algebra.SortKey)
	}
	if len(algebra.Days) != 2 || algebra.Days[0] != event.Monday || algebra.Days[1] != event.Wednesday {
		t.Error("unexpected weekday set", algebra.Days)
	}

	if sched.Rooms["Álgebra II"][event.Monday] != "Aula 304" {
		t.Error("room table not loaded")
	}
	if _, ok := sched.Rooms["Física I"]; ok {
		t.Error("classes without rooms should not appear in the room table")
	}

	// labels fall back to the defaults when the file has none
	if sched.WeekdayLabels[event.Wednesday] != "miércoles" {
		t.Error("default weekday labels not applied")
	}
}

func TestLoadRejectsBadWeekday(t *testing.T) {
	path := writeFile(t, `
materias:
  - title: "Álgebra II"
    days: [luns]
    time: "18:00"
`)
	if _, err := schedule.Load(path); err == nil {
		t.Error("expected an error for an unknown weekday")
	}
}

func TestLoadRejectsEmptyWeekdaySet(t *testing.T) {
	path := writeFile(t, `
materias:
  - title: "Álgebra II"
    time: "18:00"
`)
	if _, err := schedule.Load(path); err == nil {
		t.Error("expected an error for an empty weekday set")
	}
}
