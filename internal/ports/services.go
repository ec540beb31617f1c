package ports

import (
	"context"
	"time"

	"github.com/agentcal/core/internal/domain/entities"
)

// WeekView is the response of the week lookup: the resolved window plus the
// events inside it.
type WeekView struct {
	StartDate time.Time                `json:"start_date"`
	EndDate   time.Time                `json:"end_date"`
	Events    []entities.CalendarEvent `json:"events"`
}

// CompletedSessions counts completed periods across a month.
type CompletedSessions struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

// MonthlyStats is the server-side monthly summary.
type MonthlyStats struct {
	TotalEvents         int               `json:"total_events"`
	CompletedSessions   CompletedSessions `json:"completed_sessions"`
	AverageProductivity float64           `json:"average_productivity"`
}

// EventService is the application port behind the HTTP handlers.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]entities.CalendarEvent, error)
	GetEvent(ctx context.Context, id int) (entities.CalendarEvent, error)
	CreateEvent(ctx context.Context, event entities.CalendarEvent) (entities.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id int, patch entities.EventPatch) (entities.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id int) error
	WeekView(ctx context.Context, year, week int) (WeekView, error)
	MonthlyStats(ctx context.Context, year int, month time.Month) (MonthlyStats, error)
}
