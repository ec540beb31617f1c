package client

import (
	"context"
	"sync"
	"time"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/infrastructure/logger"
)

// EventStore is the client-side cache of server state. Fetch replaces the
// whole collection; create/update/delete patch it optimistically after the
// corresponding request succeeds. The store is an explicit, constructed
// container: callers hold a reference instead of reaching for a global.
//
// Error contract: every operation returns its error, and the store also
// records the most recent one (Err) the way a status bar would show it.
// Fetch and delete failures leave the collection untouched; create and
// update failures are meant to keep the caller's edit session open for a
// manual retry.
type EventStore struct {
	api    *Client
	logger *logger.Logger

	mu      sync.Mutex
	events  []entities.CalendarEvent
	loading bool
	lastErr error

	// fetchSeq orders overlapping fetches: a response that is not from the
	// most recently issued request is discarded rather than allowed to
	// overwrite fresher data (last-issued wins, no cancellation).
	fetchSeq uint64
}

// NewEventStore creates a store backed by the given API client.
func NewEventStore(api *Client, appLogger *logger.Logger) *EventStore {
	return &EventStore{
		api:    api,
		logger: appLogger.WithComponent("event_store"),
	}
}

// Events returns a copy of the cached collection.
func (s *EventStore) Events() []entities.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Loading reports whether an operation is in flight. Advisory UI state,
// not a lock.
func (s *EventStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the most recently recorded operation error, nil after a
// success.
func (s *EventStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Fetch replaces the local collection with the events in [start, end]
// (nil bounds unbounded). On failure the previous collection is preserved.
// A fetch superseded by a newer one has its response discarded and reports
// success without touching the cache.
func (s *EventStore) Fetch(ctx context.Context, start, end *time.Time) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	began := time.Now()
	events, err := s.api.ListEvents(ctx, start, end)
	s.logger.LogStoreOperation("fetch", float64(time.Since(began).Milliseconds()), err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if seq != s.fetchSeq {
		// A newer fetch owns the cache now; stale response dropped.
		return nil
	}
	if err != nil {
		s.lastErr = err
		return err
	}
	s.events = events
	return nil
}

// Create sends the event and appends the server-assigned entity to the
// collection on success. On failure nothing is mutated locally and the
// error is both recorded and returned.
func (s *EventStore) Create(ctx context.Context, event entities.CalendarEvent) (entities.CalendarEvent, error) {
	s.setLoading(true)

	began := time.Now()
	created, err := s.api.CreateEvent(ctx, event)
	s.logger.LogStoreOperation("create", float64(time.Since(began).Milliseconds()), err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return entities.CalendarEvent{}, err
	}
	s.lastErr = nil
	s.events = append(s.events, created)
	return created, nil
}

// Update sends a partial patch and replaces the matching local entity by
// identity on success.
func (s *EventStore) Update(ctx context.Context, id int, patch entities.EventPatch) (entities.CalendarEvent, error) {
	s.setLoading(true)

	began := time.Now()
	updated, err := s.api.UpdateEvent(ctx, id, patch)
	s.logger.LogStoreOperation("update", float64(time.Since(began).Milliseconds()), err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return entities.CalendarEvent{}, err
	}
	s.lastErr = nil
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes the event remotely and, on success, locally. The failure
// is recorded like any other, but there is nothing for the caller to retry
// with beyond repeating the gesture.
func (s *EventStore) Delete(ctx context.Context, id int) error {
	s.setLoading(true)

	began := time.Now()
	err := s.api.DeleteEvent(ctx, id)
	s.logger.LogStoreOperation("delete", float64(time.Since(began).Milliseconds()), err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.lastErr = nil
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	return nil
}

// EventsOnDate filters the cached collection to entries on the given
// calendar day, in collection order. Both sides are normalized to the
// canonical date form before comparison. Typically zero or one entries
// under the one-event-per-day convention, but more are tolerated.
func (s *EventStore) EventsOnDate(date time.Time) []entities.CalendarEvent {
	want := dateutil.Format(dateutil.Truncate(date))

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.CalendarEvent
	for _, e := range s.events {
		d, err := dateutil.Parse(e.Date)
		if err != nil {
			continue
		}
		if dateutil.Format(d) == want {
			out = append(out, e)
		}
	}
	return out
}

func (s *EventStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.lastErr = nil
	s.mu.Unlock()
}
