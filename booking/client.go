// Package booking talks to the court-booking availability API.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MarkFree is the piece status the API uses for a bookable slot.
const MarkFree = "FREE"

// DayResponse is the availability payload for a single queried date.
type DayResponse struct {
	Date    string   `json:"date"`
	Columns []Column `json:"columns"`
}

// Column is one court's schedule for the day.
type Column struct {
	Facility Facility `json:"facility"`
	Pieces   []Piece  `json:"pieces"`
}

// Facility identifies the court a column belongs to.
type Facility struct {
	Name string `json:"name"`
}

// Piece is a single time interval with its availability mark.
type Piece struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Mark  string `json:"mark"`
}

// Outcome records how the fetch for one date settled.
type Outcome struct {
	Date string
	Err  error // nil on success
}

// Client fetches day availability from the booking API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	facilityID string
}

// NewClient creates a client for one facility against the given endpoint.
func NewClient(baseURL, facilityID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		facilityID: facilityID,
	}
}

// FetchDay requests availability for a single ISO date.
func (c *Client) FetchDay(ctx context.Context, date string) (*DayResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("facility", c.facilityID)
	q.Set("date", date)
	q.Set("weekly", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var day DayResponse
	if err := json.NewDecoder(resp.Body).Decode(&day); err != nil {
		return nil, fmt.Errorf("decode day payload: %w", err)
	}
	return &day, nil
}
