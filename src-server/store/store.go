package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agendabot/src-server/event"

	"github.com/uptrace/bun"
)

// flushFailedMarker is the fixed diagnostic marker a failed flush is logged
// with; flush failures are never retried and never reach the requesting user.
const flushFailedMarker = "---- event store flush failed ----"

// Store owns the ordered in-memory event collection and its durable copy.
// The identity of an event is its insertion index; there is no delete, so
// identities are never reused. Every mutation rewrites the whole table.
//
// A single-writer mutex makes Append and Update atomic with respect to
// readers, so the daily reminder can never observe a half-applied mutation.
type Store struct {
	mu     sync.RWMutex
	db     *bun.DB
	events []event.Event

	// FlushLatency, when non-nil, receives the duration of each flush in
	// microseconds for the metrics exporter.
	FlushLatency chan<- float64
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Load reads the whole collection from storage, ordered by position. Any row
// that doesn't parse back into a valid event is fatal: the caller should exit
// rather than run with a partial calendar.
func (s *Store) Load(ctx context.Context) error {
	var rows []eventRow
	if err := s.db.NewSelect().
		Model(&rows).
		Order("position ASC").
		Scan(ctx); err != nil {
		return fmt.Errorf("(*Store).Load: %w", err)
	}

	events := make([]event.Event, 0, len(rows))
	for i, row := range rows {
		if row.Position != i {
			return fmt.Errorf("(*Store).Load: position %d found at index %d", row.Position, i)
		}
		e, err := fromRow(row)
		if err != nil {
			return fmt.Errorf("(*Store).Load: %w", err)
		}
		events = append(events, e)
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	return nil
}

// Append assigns the next sequential identity and flushes. The identity is
// valid even when the returned error is non-nil: a flush failure only means
// the durable copy is stale, and callers decide whether to surface that.
func (s *Store) Append(ctx context.Context, e event.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = len(s.events)
	s.events = append(s.events, e)
	return e.ID, s.flushLocked(ctx)
}

// Update applies the patch to the event with the given identity and flushes.
// Fields absent from the patch keep their current value; the identity never
// changes. An unknown identity is a *NotFoundError.
func (s *Store) Update(ctx context.Context, id int, p event.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= len(s.events) {
		return &event.NotFoundError{ID: id}
	}

	e := &s.events[id]
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.OccursOn != nil {
		e.OccursOn = *p.OccursOn
	}
	if p.Days != nil {
		e.Days = *p.Days
	}
	if p.SortKey != nil {
		e.SortKey = *p.SortKey
	}
	if p.FormatterTag != nil {
		e.FormatterTag = *p.FormatterTag
	}
	return s.flushLocked(ctx)
}

// Get returns the event with the given identity or a *NotFoundError.
func (s *Store) Get(id int) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= len(s.events) {
		return event.Event{}, &event.NotFoundError{ID: id}
	}
	return s.events[id], nil
}

// All returns a snapshot copy of the collection in insertion order.
func (s *Store) All() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Flush rewrites the whole table from the in-memory collection.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushLocked(ctx)
}

// flushLocked serializes the entire collection inside one transaction:
// delete everything, insert everything. Not an append-only log. Failures are
// logged here with the fixed marker and wrapped as *PersistenceError for
// callers that want to await confirmation.
func (s *Store) flushLocked(ctx context.Context) error {
	rows := make([]eventRow, len(s.events))
	for i, e := range s.events {
		row, err := toRow(i, e)
		if err != nil {
			slog.Error(flushFailedMarker, "error", err)
			return &event.PersistenceError{Err: err}
		}
		rows[i] = row
	}

	start := time.Now()
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*eventRow)(nil)).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	}); err != nil {
		slog.Error(flushFailedMarker, "error", err)
		return &event.PersistenceError{Err: err}
	}

	if s.FlushLatency != nil {
		select {
		case s.FlushLatency <- float64(time.Since(start).Microseconds()):
		default:
		}
	}
	return nil
}
