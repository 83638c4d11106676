package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/slotshare/internal/selection"
)

// ErrInvalidResponse indicates the server answered with a body the client
// could not decode.
var ErrInvalidResponse = errors.New("client: invalid response from server")

// ServerError carries a non-success HTTP status returned by the schedule
// service.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("client: server error: %d", e.StatusCode)
}

// Slot mirrors the wire representation of one proposed or selected range.
type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Schedule is the remote schedule record.
type Schedule struct {
	ID            int64  `json:"id"`
	Slots         []Slot `json:"slots"`
	Timezone      string `json:"timezone"`
	Status        string `json:"status"`
	SelectedSlots []Slot `json:"selected_slots"`
	URL           string `json:"url,omitempty"`
}

// SelectResult is the outcome of a slot selection call.
type SelectResult struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url"`
}

// Client talks to the remote schedule service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New builds a client for the service at baseURL. A nil httpc gets a default
// with a 15 second timeout.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// PostSchedule submits a shareable schedule and returns the created record.
// Any status other than 201 yields a ServerError.
func (c *Client) PostSchedule(ctx context.Context, schedule selection.ShareableSchedule) (Schedule, error) {
	payload := map[string]selection.ShareableSchedule{"schedule": schedule}

	var created Schedule
	if err := c.do(ctx, http.MethodPost, "/schedules", payload, http.StatusCreated, &created); err != nil {
		return Schedule{}, err
	}
	return created, nil
}

// FetchSchedule retrieves a schedule record by id.
func (c *Client) FetchSchedule(ctx context.Context, id int64) (Schedule, error) {
	var schedule Schedule
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schedules/%d", id), nil, http.StatusOK, &schedule); err != nil {
		return Schedule{}, err
	}
	return schedule, nil
}

// SelectSlots confirms the chosen slots on a schedule.
func (c *Client) SelectSlots(ctx context.Context, id int64, slots []Slot) (SelectResult, error) {
	payload := map[string][]Slot{"selected_slots": slots}

	var result SelectResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/schedules/%d/select", id), payload, http.StatusOK, &result); err != nil {
		return SelectResult{}, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, wantStatus int, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return &ServerError{StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return nil
}
