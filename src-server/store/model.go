package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"agendabot/src-server/event"

	"github.com/uptrace/bun"
)

// eventRow is the persisted shape of one event, mirroring the stored layout:
// position is the identity, the weekday set is a JSON array of short names.
// There is no schema version field; format changes need out-of-band migration.
type eventRow struct {
	bun.BaseModel `bun:"table:events"`

	Position     int    `bun:"position,pk"`
	Kind         string `bun:"kind,notnull"`
	Title        string `bun:"title,notnull"`
	Date         string `bun:"date"`
	Weekdays     string `bun:"weekdays"`
	SortKey      string `bun:"sort_key"`
	FormatterTag string `bun:"formatter_tag"`
}

// CreateSchema creates the events table.
func CreateSchema(db *bun.DB) error {
	if err := db.RunInTx(context.Background(), &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewCreateTable().
			Model((*eventRow)(nil)).
			IfNotExists().
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}
	return nil
}

func toRow(id int, e event.Event) (eventRow, error) {
	row := eventRow{
		Position:     id,
		Kind:         string(e.Kind),
		Title:        e.Title,
		Date:         e.OccursOn,
		SortKey:      e.SortKey,
		FormatterTag: e.FormatterTag,
	}
	if len(e.Days) > 0 {
		raw, err := json.Marshal(e.Days)
		if err != nil {
			return eventRow{}, fmt.Errorf("toRow: can't encode weekday set: %w", err)
		}
		row.Weekdays = string(raw)
	}
	return row, nil
}

func fromRow(row eventRow) (event.Event, error) {
	e := event.Event{
		ID:           row.Position,
		Kind:         event.Kind(row.Kind),
		Title:        row.Title,
		OccursOn:     row.Date,
		SortKey:      row.SortKey,
		FormatterTag: row.FormatterTag,
	}
	if !e.Kind.Valid() {
		return event.Event{}, fmt.Errorf("fromRow: unknown kind %q at position %d", row.Kind, row.Position)
	}
	if row.Weekdays != "" {
		if err := json.Unmarshal([]byte(row.Weekdays), &e.Days); err != nil {
			return event.Event{}, fmt.Errorf("fromRow: can't decode weekday set at position %d: %w", row.Position, err)
		}
		for _, d := range e.Days {
			if !d.Valid() {
				return event.Event{}, fmt.Errorf("fromRow: unknown weekday %q at position %d", d, row.Position)
			}
		}
	}
	if e.Kind == event.KindRecurring && len(e.Days) == 0 {
		return event.Event{}, fmt.Errorf("fromRow: recurring event without weekday set at position %d", row.Position)
	}
	return e, nil
}
