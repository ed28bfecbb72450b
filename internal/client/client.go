// Package client is the Go consumer of the hourbook HTTP API: a thin typed
// client plus the incremental Loader that assembles a duplicate-free,
// correctly ordered local view of a user's entries from date-paginated
// responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// Client talks to one hourbook server on behalf of one principal.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the server at baseURL. httpClient may be nil.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) { c.token = token }

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, name, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"name": name, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Signup registers a new principal.
func (c *Client) Signup(ctx context.Context, name, displayName, password string) error {
	body := map[string]string{"name": name, "displayname": displayName, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", nil, body, nil)
}

// Entries fetches one date-paginated window.
func (c *Client) Entries(ctx context.Context, page, limit int) (*domain.EntriesPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var result domain.EntriesPage
	if err := c.do(ctx, http.MethodGet, "/api/time-entries", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EntriesByDate fetches one date group.
func (c *Client) EntriesByDate(ctx context.Context, date string) ([]domain.TimeEntry, error) {
	q := url.Values{}
	q.Set("date", date)
	var result []domain.TimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/time-entries/by-date", q, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateEntry creates an entry and returns the stored row.
func (c *Client) CreateEntry(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	var result domain.TimeEntry
	if err := c.do(ctx, http.MethodPost, "/api/time-entries", nil, e, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEntry replaces an entry's mutable fields and returns the stored row.
func (c *Client) UpdateEntry(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	var result domain.TimeEntry
	path := fmt.Sprintf("/api/time-entries/%d", e.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, e, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEntry hard-deletes an entry.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/time-entries/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ─── Statistics ─────────────────────────────────────────────────────────────

// StatsByTaskID fetches the all-time per-task view.
func (c *Client) StatsByTaskID(ctx context.Context) (*domain.TaskIDStats, error) {
	var result domain.TaskIDStats
	if err := c.do(ctx, http.MethodGet, "/api/stats/task-id", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StatsByTaskType fetches the all-time per-task-type view.
func (c *Client) StatsByTaskType(ctx context.Context) (*domain.TaskTypeStats, error) {
	var result domain.TaskTypeStats
	if err := c.do(ctx, http.MethodGet, "/api/stats/task-type", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StatsMonthly fetches the per-month view, months most recent first.
func (c *Client) StatsMonthly(ctx context.Context) ([]domain.MonthlyStats, error) {
	var result []domain.MonthlyStats
	if err := c.do(ctx, http.MethodGet, "/api/stats/task-id-monthly", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// StatsLast30Days fetches the trailing-window view.
func (c *Client) StatsLast30Days(ctx context.Context) (*domain.Last30DaysStats, error) {
	var result domain.Last30DaysStats
	if err := c.do(ctx, http.MethodGet, "/api/stats/last-30-days", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StatsSummary fetches the coarse totals.
func (c *Client) StatsSummary(ctx context.Context) (*domain.Summary, error) {
	var result domain.Summary
	if err := c.do(ctx, http.MethodGet, "/api/stats/summary", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ─── Transport ──────────────────────────────────────────────────────────────

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
