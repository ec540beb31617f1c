package ports

import (
	"context"
	"time"

	"github.com/agentcal/core/internal/domain/entities"
)

// EventFilter narrows an event listing. Nil bounds mean unbounded on that
// side; both bounds are inclusive and compared by calendar day.
type EventFilter struct {
	Start    *time.Time
	End      *time.Time
	Category string
}

// EventRepository is the storage port for calendar events.
type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]entities.CalendarEvent, error)
	GetByID(ctx context.Context, id int) (entities.CalendarEvent, error)
	Create(ctx context.Context, event entities.CalendarEvent) (entities.CalendarEvent, error)
	Update(ctx context.Context, id int, patch entities.EventPatch) (entities.CalendarEvent, error)
	Delete(ctx context.Context, id int) error
}
