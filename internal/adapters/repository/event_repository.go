package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/ports"
)

// EventRepository is an in-memory implementation of the event storage port.
// The collection is guarded by a mutex and ordered by date on listing; ids
// are assigned serially on create.
type EventRepository struct {
	mu     sync.RWMutex
	events map[int]entities.CalendarEvent
	nextID int
}

// NewEventRepository creates an empty in-memory event repository.
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[int]entities.CalendarEvent),
		nextID: 1,
	}
}

// List returns events matching the filter, ordered by date then id.
func (r *EventRepository) List(ctx context.Context, filter ports.EventFilter) ([]entities.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.CalendarEvent, 0, len(r.events))
	for _, e := range r.events {
		d, err := dateutil.Parse(e.Date)
		if err != nil {
			continue
		}
		if filter.Start != nil && d.Before(dateutil.Truncate(*filter.Start)) {
			continue
		}
		if filter.End != nil && d.After(dateutil.Truncate(*filter.End)) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetByID returns the event with the given id.
func (r *EventRepository) GetByID(ctx context.Context, id int) (entities.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return entities.CalendarEvent{}, entities.ErrEventNotFound
	}
	return e, nil
}

// Create stores a new event and assigns its identity and timestamps.
func (r *EventRepository) Create(ctx context.Context, event entities.CalendarEvent) (entities.CalendarEvent, error) {
	if _, err := dateutil.Parse(event.Date); err != nil {
		return entities.CalendarEvent{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	r.events[event.ID] = event
	return event, nil
}

// Update applies a partial patch to the event with the given id.
func (r *EventRepository) Update(ctx context.Context, id int, patch entities.EventPatch) (entities.CalendarEvent, error) {
	if patch.Date != nil {
		if _, err := dateutil.Parse(*patch.Date); err != nil {
			return entities.CalendarEvent{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return entities.CalendarEvent{}, entities.ErrEventNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	r.events[id] = e
	return e, nil
}

// Delete removes the event with the given id.
func (r *EventRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return entities.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}
