package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/agentcal/core/internal/adapters/repository"
	"github.com/agentcal/core/internal/application/services"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/infrastructure/logger"
	"github.com/agentcal/core/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestHandler() (*EventHandler, *echo.Echo) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	repo := repository.NewEventRepository()
	svc := services.NewEventService(repo, logger.NewNop())
	return NewEventHandler(svc, logger.NewNop()), e
}

func request(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func createEvent(t *testing.T, h *EventHandler, e *echo.Echo, body string) entities.CalendarEvent {
	t.Helper()
	c, rec := request(e, http.MethodPost, "/api/v1/events", body)
	require.NoError(t, h.CreateEvent(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entities.CalendarEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestCreateEvent(t *testing.T) {
	h, e := newTestHandler()

	created := createEvent(t, h, e, `{
		"date": "2026-09-01",
		"title": "Tuesday plan",
		"morning_9_10": "work: sprint review",
		"productivity_score": 7.5
	}`)

	require.Equal(t, 1, created.ID)
	require.Equal(t, "2026-09-01", created.Date)
	require.Equal(t, "work: sprint review", created.Morning9_10)
	require.False(t, created.CreatedAt.IsZero())
}

func TestCreateEvent_ValidationFailures(t *testing.T) {
	h, e := newTestHandler()

	cases := map[string]string{
		"missing date":   `{"title": "no date"}`,
		"bad date":       `{"date": "09/01/2026", "title": "slash date"}`,
		"missing title":  `{"date": "2026-09-01"}`,
		"score too high": `{"date": "2026-09-01", "title": "x", "productivity_score": 11}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := request(e, http.MethodPost, "/api/v1/events", body)
			err := h.CreateEvent(c)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			require.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestGetEvent(t *testing.T) {
	h, e := newTestHandler()
	created := createEvent(t, h, e, `{"date": "2026-09-01", "title": "lookup me"}`)

	c, rec := request(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetEvent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.CalendarEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "lookup me", got.Title)
}

func TestGetEvent_NotFoundAndBadID(t *testing.T) {
	h, e := newTestHandler()

	c, _ := request(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := h.GetEvent(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)

	c, _ = request(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err = h.GetEvent(c)
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestListEvents_DateAndCategoryFilter(t *testing.T) {
	h, e := newTestHandler()
	createEvent(t, h, e, `{"date": "2026-09-01", "title": "in range", "category": "work"}`)
	createEvent(t, h, e, `{"date": "2026-09-15", "title": "in range too", "category": "study"}`)
	createEvent(t, h, e, `{"date": "2026-10-01", "title": "next month", "category": "work"}`)

	c, rec := request(e, http.MethodGet, "/api/v1/events?start_date=2026-09-01&end_date=2026-09-30", "")
	require.NoError(t, h.ListEvents(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var events []entities.CalendarEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	// Ordered by date.
	require.Equal(t, "in range", events[0].Title)
	require.Equal(t, "in range too", events[1].Title)

	c, rec = request(e, http.MethodGet, "/api/v1/events?category=work", "")
	require.NoError(t, h.ListEvents(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	for _, ev := range events {
		require.Equal(t, "work", ev.Category)
	}
}

func TestListEvents_BadBound(t *testing.T) {
	h, e := newTestHandler()
	c, _ := request(e, http.MethodGet, "/api/v1/events?start_date=bogus", "")
	err := h.ListEvents(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUpdateEvent_PartialPatch(t *testing.T) {
	h, e := newTestHandler()
	createEvent(t, h, e, `{
		"date": "2026-09-01",
		"title": "before",
		"morning_7_8": "study: reading",
		"productivity_score": 5
	}`)

	c, rec := request(e, http.MethodPut, "/", `{"morning_completed": true, "productivity_score": 9}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateEvent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated entities.CalendarEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.True(t, updated.MorningCompleted)
	require.InDelta(t, 9.0, updated.ProductivityScore, 1e-9)
	// Untouched fields survive the patch.
	require.Equal(t, "before", updated.Title)
	require.Equal(t, "study: reading", updated.Morning7_8)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c, _ := request(e, http.MethodPut, "/", `{"title": "ghost"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	err := h.UpdateEvent(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestDeleteEvent(t *testing.T) {
	h, e := newTestHandler()
	createEvent(t, h, e, `{"date": "2026-09-01", "title": "short-lived"}`)

	c, rec := request(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteEvent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, _ = request(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.DeleteEvent(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestWeekView(t *testing.T) {
	h, e := newTestHandler()
	// 2026 ISO week 36 runs 2026-08-31 to 2026-09-06.
	createEvent(t, h, e, `{"date": "2026-08-31", "title": "monday"}`)
	createEvent(t, h, e, `{"date": "2026-09-06", "title": "sunday"}`)
	createEvent(t, h, e, `{"date": "2026-09-07", "title": "next week"}`)

	c, rec := request(e, http.MethodGet, "/", "")
	c.SetParamNames("year", "week")
	c.SetParamValues("2026", "36")
	require.NoError(t, h.WeekView(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view ports.WeekView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, "2026-08-31", view.StartDate.Format(entities.DateLayout))
	require.Equal(t, "2026-09-06", view.EndDate.Format(entities.DateLayout))
	require.Len(t, view.Events, 2)
}

func TestWeekView_InvalidWeek(t *testing.T) {
	h, e := newTestHandler()
	c, _ := request(e, http.MethodGet, "/", "")
	c.SetParamNames("year", "week")
	c.SetParamValues("2026", "54")
	err := h.WeekView(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestMonthlyStats(t *testing.T) {
	h, e := newTestHandler()
	createEvent(t, h, e, `{
		"date": "2026-09-01", "title": "a",
		"morning_completed": true, "afternoon_completed": true, "evening_completed": true,
		"productivity_score": 8
	}`)
	createEvent(t, h, e, `{
		"date": "2026-09-02", "title": "b",
		"morning_completed": true,
		"productivity_score": 4
	}`)
	createEvent(t, h, e, `{"date": "2026-10-01", "title": "ignored", "productivity_score": 10}`)

	c, rec := request(e, http.MethodGet, "/", "")
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "9")
	require.NoError(t, h.MonthlyStats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats ports.MonthlyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 2, stats.TotalEvents)
	require.Equal(t, 2, stats.CompletedSessions.Morning)
	require.Equal(t, 1, stats.CompletedSessions.Afternoon)
	require.Equal(t, 1, stats.CompletedSessions.Evening)
	require.InDelta(t, 6.0, stats.AverageProductivity, 1e-9)
}

func TestMonthlyStats_EmptyMonthIsZero(t *testing.T) {
	h, e := newTestHandler()
	c, rec := request(e, http.MethodGet, "/", "")
	c.SetParamNames("year", "month")
	c.SetParamValues("2026", "2")
	require.NoError(t, h.MonthlyStats(c))

	var stats ports.MonthlyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 0, stats.TotalEvents)
	require.Equal(t, 0.0, stats.AverageProductivity)
}
