package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/infrastructure/logger"
	"github.com/agentcal/core/internal/ports"
)

// EventService implements the calendar application logic behind the HTTP
// surface: CRUD pass-through with validation, the ISO-week view and the
// monthly summary.
type EventService struct {
	repo   ports.EventRepository
	logger *logger.Logger
}

// NewEventService creates a new event service.
func NewEventService(repo ports.EventRepository, appLogger *logger.Logger) *EventService {
	return &EventService{
		repo:   repo,
		logger: appLogger.WithComponent("event_service"),
	}
}

// ListEvents returns events matching the filter, ordered by date.
func (s *EventService) ListEvents(ctx context.Context, filter ports.EventFilter) ([]entities.CalendarEvent, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEvent returns the event with the given id.
func (s *EventService) GetEvent(ctx context.Context, id int) (entities.CalendarEvent, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(ctx context.Context, event entities.CalendarEvent) (entities.CalendarEvent, error) {
	d, err := dateutil.Parse(event.Date)
	if err != nil {
		return entities.CalendarEvent{}, err
	}
	event.Date = dateutil.Format(d)

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return entities.CalendarEvent{}, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Infow("Event created", "event_id", created.ID, "date", created.Date)
	return created, nil
}

// UpdateEvent applies a partial patch to an existing event.
func (s *EventService) UpdateEvent(ctx context.Context, id int, patch entities.EventPatch) (entities.CalendarEvent, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return entities.CalendarEvent{}, err
	}

	s.logger.Infow("Event updated", "event_id", id)
	return updated, nil
}

// DeleteEvent removes an event by id.
func (s *EventService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Event deleted", "event_id", id)
	return nil
}

// WeekView resolves the Monday-start window of the given ISO week and
// returns it together with the events inside it.
func (s *EventService) WeekView(ctx context.Context, year, week int) (ports.WeekView, error) {
	if week < 1 || week > 53 {
		return ports.WeekView{}, fmt.Errorf("%w: week %d", entities.ErrInvalidDate, week)
	}

	start := dateutil.ISOWeekStart(year, week)
	end := start.AddDate(0, 0, 6)

	events, err := s.repo.List(ctx, ports.EventFilter{Start: &start, End: &end})
	if err != nil {
		return ports.WeekView{}, fmt.Errorf("failed to load week view: %w", err)
	}
	return ports.WeekView{StartDate: start, EndDate: end, Events: events}, nil
}

// MonthlyStats summarizes one calendar month: event count, completed
// periods per section of the day, and average productivity over the
// month's events (0 when the month is empty).
func (s *EventService) MonthlyStats(ctx context.Context, year int, month time.Month) (ports.MonthlyStats, error) {
	if month < time.January || month > time.December {
		return ports.MonthlyStats{}, fmt.Errorf("%w: month %d", entities.ErrInvalidDate, month)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := dateutil.EndOfMonth(start)

	events, err := s.repo.List(ctx, ports.EventFilter{Start: &start, End: &end})
	if err != nil {
		return ports.MonthlyStats{}, fmt.Errorf("failed to load monthly stats: %w", err)
	}

	stats := ports.MonthlyStats{TotalEvents: len(events)}
	var sum float64
	for _, e := range events {
		if e.MorningCompleted {
			stats.CompletedSessions.Morning++
		}
		if e.AfternoonCompleted {
			stats.CompletedSessions.Afternoon++
		}
		if e.EveningCompleted {
			stats.CompletedSessions.Evening++
		}
		sum += e.ProductivityScore
	}
	if stats.TotalEvents > 0 {
		stats.AverageProductivity = sum / float64(stats.TotalEvents)
	}
	return stats, nil
}
