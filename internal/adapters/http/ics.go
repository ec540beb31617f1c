package http

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/ports"
)

// ExportICS handles GET /events/ics. It renders the stored events as an
// iCalendar feed, one VEVENT per non-empty time slot, so the planning grid
// can be subscribed to from any calendar application. The same optional
// start_date/end_date bounds as the list endpoint apply.
func (h *EventHandler) ExportICS(c echo.Context) error {
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

	events, err := h.service.ListEvents(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("ICS export failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export events")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//AgentCalendar//EN")

	now := time.Now().UTC()
	for _, e := range events {
		day, err := dateutil.Parse(e.Date)
		if err != nil {
			continue
		}
		for _, slot := range entities.TimeSlots {
			content, err := e.Slot(slot.Key)
			if err != nil || content == "" {
				continue
			}

			uid := fmt.Sprintf("%d-%s@agentcal", e.ID, slot.Key)
			ev := cal.AddEvent(uid)
			ev.SetDtStampTime(now)
			ev.SetStartAt(day.Add(time.Duration(slot.StartHour) * time.Hour))
			ev.SetEndAt(day.Add(time.Duration(slot.EndHour) * time.Hour))
			ev.SetSummary(content)
			if e.Title != "" {
				ev.SetDescription(e.Title)
			}
		}
	}

	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}
