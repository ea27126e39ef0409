package store_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"agendabot/src-server/event"
	"agendabot/src-server/store"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var testDBCounter int

// initDB opens a shared in-memory database so every connection of the pool
// sees the same data.
func initDB(t *testing.T) *bun.DB {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", testDBCounter)
	db, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	bundb := bun.NewDB(db, sqlitedialect.New())
	if err := store.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	return bundb
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	bundb := initDB(t)
	s := store.New(bundb)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	events := []event.Event{
		{
			Kind:         event.KindRecurring,
			Title:        "Álgebra II",
			Days:         []event.Weekday{event.Monday, event.Wednesday},
			SortKey:      "18:00",
			FormatterTag: "materia",
		},
		{
			Kind:     event.KindOneOff,
			Title:    "Examen final",
			OccursOn: "15/03/2025",
			SortKey:  "15/03/2025",
		},
		{
			Kind:     event.KindOneOff,
			Title:    "Entrega del TP",
			OccursOn: "20/03/2025",
			SortKey:  "20/03/2025",
		},
	}
	for i, e := range events {
		id, err := s.Append(context.Background(), e)
		if err != nil {
			t.Fatal(err)
		}
		if id != i {
			t.Errorf("expected identity %d, got %d", i, id)
		}
	}

	// a fresh store over the same database must see identical events
	reloaded := store.New(bundb)
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := reloaded.All()
	if len(got) != len(events) {
		t.Fatal("expected", len(events), "events, got", len(got))
	}
	for i, e := range got {
		if e.ID != i {
			t.Errorf("identity %d not preserved, got %d", i, e.ID)
		}
		want := events[i]
		want.ID = i
		if !reflect.DeepEqual(e, want) {
			t.Errorf("event %d: got %+v, want %+v", i, e, want)
		}
	}
}

func TestStoreUpdate(t *testing.T) {
	bundb := initDB(t)
	s := store.New(bundb)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	id, err := s.Append(context.Background(), event.Event{
		Kind:         event.KindOneOff,
		Title:        "Examen final",
		OccursOn:     "15/03/2025",
		SortKey:      "15/03/2025",
		FormatterTag: "materia",
	})
	if err != nil {
		t.Fatal(err)
	}

	factory := &event.Factory{}
	replacement, err := factory.OneOff("16/03/2025", "Examen final v2")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Update(context.Background(), id, replacement.AsPatch()); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != id {
		t.Error("identity not preserved across update")
	}
	if got.Title != "Examen final v2" || got.OccursOn != "16/03/2025" || got.SortKey != "16/03/2025" {
		t.Errorf("fields not overwritten: %+v", got)
	}
	// fields absent from the patch keep their value
	if got.FormatterTag != "materia" {
		t.Error("formatter tag should survive an edit, got", got.FormatterTag)
	}

	// and the durable copy agrees
	reloaded := store.New(bundb)
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	persisted, err := reloaded.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(persisted, got) {
		t.Errorf("persisted %+v, in-memory %+v", persisted, got)
	}
}

func TestStoreNotFound(t *testing.T) {
	bundb := initDB(t)
	s := store.New(bundb)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	var notFoundErr *event.NotFoundError
	if _, err := s.Get(0); !errors.As(err, &notFoundErr) {
		t.Error("expected a not-found error, got", err)
	}
	if err := s.Update(context.Background(), 7, event.Patch{}); !errors.As(err, &notFoundErr) {
		t.Error("expected a not-found error, got", err)
	}
	if notFoundErr != nil && notFoundErr.ID != 7 {
		t.Error("error should carry the id, got", notFoundErr.ID)
	}
}

func TestStoreLoadRejectsUnknownKind(t *testing.T) {
	bundb := initDB(t)

	if _, err := bundb.NewInsert().
		Model(&map[string]interface{}{
			"position": 0,
			"kind":     "weird",
			"title":    "Examen final",
		}).
		TableExpr("events").
		Exec(context.Background()); err != nil {
		t.Fatal(err)
	}

	s := store.New(bundb)
	if err := s.Load(context.Background()); err == nil {
		t.Error("a row with an unknown kind should fail the load")
	}
}
