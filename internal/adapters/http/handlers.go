package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/infrastructure/logger"
	"github.com/agentcal/core/internal/ports"
)

// EventHandler handles calendar event requests
type EventHandler struct {
	service ports.EventService
	logger  *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(service ports.EventService, appLogger *logger.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  appLogger,
	}
}

// CreateEventRequest is the POST /events payload: an event without identity.
type CreateEventRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Title    string `json:"title" validate:"required,max=255"`
	Category string `json:"category" validate:"max=100"`

	Morning7_8   string `json:"morning_7_8" validate:"max=255"`
	Morning8_9   string `json:"morning_8_9" validate:"max=255"`
	Morning9_10  string `json:"morning_9_10" validate:"max=255"`
	Morning10_11 string `json:"morning_10_11" validate:"max=255"`
	Morning11_12 string `json:"morning_11_12" validate:"max=255"`

	Afternoon12_13 string `json:"afternoon_12_13" validate:"max=255"`
	Afternoon13_14 string `json:"afternoon_13_14" validate:"max=255"`
	Afternoon14_15 string `json:"afternoon_14_15" validate:"max=255"`
	Afternoon15_16 string `json:"afternoon_15_16" validate:"max=255"`
	Afternoon16_17 string `json:"afternoon_16_17" validate:"max=255"`
	Afternoon17_18 string `json:"afternoon_17_18" validate:"max=255"`

	Evening18_19 string `json:"evening_18_19" validate:"max=255"`
	Evening19_20 string `json:"evening_19_20" validate:"max=255"`
	Evening20_21 string `json:"evening_20_21" validate:"max=255"`
	Evening21_22 string `json:"evening_21_22" validate:"max=255"`
	Evening22_23 string `json:"evening_22_23" validate:"max=255"`
	Evening23_24 string `json:"evening_23_24" validate:"max=255"`

	MorningCompleted   bool `json:"morning_completed"`
	AfternoonCompleted bool `json:"afternoon_completed"`
	EveningCompleted   bool `json:"evening_completed"`

	ProductivityScore float64 `json:"productivity_score" validate:"min=0,max=10"`
	Notes             string  `json:"notes"`
}

func (r *CreateEventRequest) toEntity() entities.CalendarEvent {
	return entities.CalendarEvent{
		Date:     r.Date,
		Title:    r.Title,
		Category: r.Category,

		Morning7_8:   r.Morning7_8,
		Morning8_9:   r.Morning8_9,
		Morning9_10:  r.Morning9_10,
		Morning10_11: r.Morning10_11,
		Morning11_12: r.Morning11_12,

		Afternoon12_13: r.Afternoon12_13,
		Afternoon13_14: r.Afternoon13_14,
		Afternoon14_15: r.Afternoon14_15,
		Afternoon15_16: r.Afternoon15_16,
		Afternoon16_17: r.Afternoon16_17,
		Afternoon17_18: r.Afternoon17_18,

		Evening18_19: r.Evening18_19,
		Evening19_20: r.Evening19_20,
		Evening20_21: r.Evening20_21,
		Evening21_22: r.Evening21_22,
		Evening22_23: r.Evening22_23,
		Evening23_24: r.Evening23_24,

		MorningCompleted:   r.MorningCompleted,
		AfternoonCompleted: r.AfternoonCompleted,
		EveningCompleted:   r.EveningCompleted,

		ProductivityScore: r.ProductivityScore,
		Notes:             r.Notes,
	}
}

// ListEvents handles GET /events with optional start_date, end_date and
// category filters. Bounds are inclusive.
func (h *EventHandler) ListEvents(c echo.Context) error {
	var filter ports.EventFilter

	if v := c.QueryParam("start_date"); v != "" {
		d, err := dateutil.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid start_date")
		}
		filter.Start = &d
	}
	if v := c.QueryParam("end_date"); v != "" {
		d, err := dateutil.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid end_date")
		}
		filter.End = &d
	}
	filter.Category = c.QueryParam("category")

	events, err := h.service.ListEvents(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List events failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list events")
	}

	return c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := h.service.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		h.logger.Error("Get event failed", "error", err, "event_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load event")
	}

	return c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.CreateEvent(c.Request().Context(), req.toEntity())
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
		}
		h.logger.Error("Create event failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create event")
	}

	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent handles PUT /events/:id with a partial patch; absent fields
// are left untouched.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var patch entities.EventPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	event, err := h.service.UpdateEvent(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		if errors.Is(err, entities.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
		}
		h.logger.Error("Update event failed", "error", err, "event_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update event")
	}

	return c.JSON(http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/:id
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEvent(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		h.logger.Error("Delete event failed", "error", err, "event_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete event")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// WeekView handles GET /week/:year/:week
func (h *EventHandler) WeekView(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid week")
	}

	view, err := h.service.WeekView(c.Request().Context(), year, week)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid week")
		}
		h.logger.Error("Week view failed", "error", err, "year", year, "week", week)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load week view")
	}

	return c.JSON(http.StatusOK, view)
}

// MonthlyStats handles GET /stats/:year/:month
func (h *EventHandler) MonthlyStats(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid month")
	}

	stats, err := h.service.MonthlyStats(c.Request().Context(), year, time.Month(month))
	if err != nil {
		if errors.Is(err, entities.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month")
		}
		h.logger.Error("Monthly stats failed", "error", err, "year", year, "month", month)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load stats")
	}

	return c.JSON(http.StatusOK, stats)
}

// MessageResponse is a simple message envelope
type MessageResponse struct {
	Message string `json:"message"`
}

func eventID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid event ID")
	}
	return id, nil
}
