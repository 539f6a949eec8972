// Package client implements the consumer side of the reservation
// protocol: composing and submitting drafts, cancelling pending records,
// and fetching paginated listings through the uniform response envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/courtline/courtline/internal/reservation"
)

// APIError is a domain rejection: the server answered the request and
// explicitly refused it with a code and message. Anything else (network
// failure, malformed response) surfaces as a plain error with no code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// ErrSubmitInFlight is returned when a submission is attempted while a
// previous one has not finished. Drafts are never sent twice concurrently.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Client talks to one reservation service. Requests are single-attempt;
// retries are always user-initiated.
type Client struct {
	hc         *http.Client
	baseURL    string
	submitting atomic.Bool
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Submit sends the draft. On success it returns the server-assigned uid
// and the caller discards the draft; on failure the draft is left
// untouched for correction and resubmission. A second concurrent call
// fails fast with ErrSubmitInFlight.
func (c *Client) Submit(ctx context.Context, d reservation.Draft) (int64, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return 0, ErrSubmitInFlight
	}
	defer c.submitting.Store(false)

	body := struct{ Reservation reservation.Draft }{Reservation: d}
	data, err := c.do(ctx, http.MethodPost, nil, body)
	if err != nil {
		return 0, err
	}
	var uid int64
	if err := json.Unmarshal(data, &uid); err != nil {
		return 0, fmt.Errorf("unexpected submit response: %w", err)
	}
	return uid, nil
}

// Cancel asks the server to remove a pending reservation.
func (c *Client) Cancel(ctx context.Context, uid int64) error {
	query := url.Values{}
	query.Set("Uid", fmt.Sprintf("%d", uid))
	_, err := c.do(ctx, http.MethodDelete, query, nil)
	return err
}

// Page is one fetched slice of the listing plus the authoritative total.
type Page struct {
	Count  int
	Result []reservation.Record
}

// FetchPage retrieves the 0-based page of the given size.
func (c *Client) FetchPage(ctx context.Context, page, size int) (Page, error) {
	query := url.Values{}
	query.Set("Page", fmt.Sprintf("%d", page))
	query.Set("Limit", fmt.Sprintf("%d", size))
	data, err := c.do(ctx, http.MethodGet, query, nil)
	if err != nil {
		return Page{}, err
	}
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return Page{}, fmt.Errorf("unexpected listing response: %w", err)
	}
	return p, nil
}

type envelope struct {
	Success bool
	Code    int
	Message string
	Data    json.RawMessage
}

func (c *Client) do(ctx context.Context, method string, query url.Values, body any) (json.RawMessage, error) {
	requestURL := c.baseURL + "/api/reservations"
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if !env.Success {
		return nil, &APIError{Code: env.Code, Message: env.Message}
	}
	return env.Data, nil
}
