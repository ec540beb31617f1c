// Package client talks to the calendar REST API and keeps an optimistic
// in-memory cache of server state. The API itself is a black-box
// collaborator; everything here is request/response plumbing plus the cache
// contract the UI layers rely on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/infrastructure/config"
	"github.com/agentcal/core/internal/infrastructure/logger"
)

// Error kinds surfaced to callers. A 404 on the events list is classified
// as the server being unreachable (the route always exists on a live
// backend); anything else is a generic request failure.
var (
	ErrServerUnreachable = errors.New("server unreachable, check that the backend is running")
	ErrRequestFailed     = errors.New("request failed")
)

const apiPrefix = "/api/v1"

// Client is the low-level REST API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates an API client from the client configuration.
func New(cfg config.ClientConfig, appLogger *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.APIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: appLogger.WithComponent("api_client"),
	}
}

// ListEvents fetches events whose date falls in [start, end] inclusive.
// Nil bounds mean unbounded on that side.
func (c *Client) ListEvents(ctx context.Context, start, end *time.Time) ([]entities.CalendarEvent, error) {
	params := url.Values{}
	if start != nil {
		params.Set("start_date", dateutil.Format(*start))
	}
	if end != nil {
		params.Set("end_date", dateutil.Format(*end))
	}

	endpoint := c.baseURL + apiPrefix + "/events"
	if enc := params.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrServerUnreachable
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, res.StatusCode)
	}

	var events []entities.CalendarEvent
	if err := json.NewDecoder(res.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
	}
	return events, nil
}

// CreateEvent sends a new event (without identity) and returns the
// server-assigned entity.
func (c *Client) CreateEvent(ctx context.Context, event entities.CalendarEvent) (entities.CalendarEvent, error) {
	var created entities.CalendarEvent
	err := c.send(ctx, http.MethodPost, apiPrefix+"/events", event, http.StatusCreated, &created)
	return created, err
}

// UpdateEvent sends a partial patch and returns the updated entity.
func (c *Client) UpdateEvent(ctx context.Context, id int, patch entities.EventPatch) (entities.CalendarEvent, error) {
	var updated entities.CalendarEvent
	err := c.send(ctx, http.MethodPut, fmt.Sprintf("%s/events/%d", apiPrefix, id), patch, http.StatusOK, &updated)
	return updated, err
}

// DeleteEvent removes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("%s/events/%d", apiPrefix, id), nil, http.StatusOK, nil)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		c.logger.Warnw("Unexpected API response",
			"method", method, "path", path, "status", res.StatusCode)
		return fmt.Errorf("%w: status %d", ErrRequestFailed, res.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
		}
	}
	return nil
}
