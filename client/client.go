// Package client is the Go SDK for the Cookite reservations API. It
// implements the submission pipeline the landing page relies on: local
// validation, a serialized request queue with a minimum inter-request
// interval, bounded retries with exponential backoff, a per-value
// validation cache and a submission state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/email"
)

type Config struct {
	// BaseURL of the API, e.g. "http://localhost:8080".
	BaseURL string
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// RequestTimeout bounds every network call. Defaults to 30s.
	RequestTimeout time.Duration
	// MinRequestInterval spaces out operation starts. Defaults to 100ms.
	MinRequestInterval time.Duration
	Retry              RetryOptions
	HTTPClient         *http.Client
}

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	retry   RetryOptions
	http    *http.Client
	queue   *RequestQueue
}

func New(cfg Config) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.RequestTimeout,
		retry:   cfg.Retry,
		http:    cfg.HTTPClient,
		queue:   NewRequestQueue(cfg.MinRequestInterval),
	}
}

// Close drains and stops the request queue.
func (c *Client) Close() { c.queue.Close() }

// Submission is the reservation payload: customer, chosen items and the
// client-computed totals frozen at submission time.
type Submission struct {
	Customer domain.Customer          `json:"customer"`
	Items    []domain.ReservationItem `json:"items"`
	Subtotal float64                  `json:"subtotal"`
	Discount float64                  `json:"discount"`
	Total    float64                  `json:"total"`
}

type CreateReservationResult struct {
	Success       bool                `json:"success"`
	ReservationID string              `json:"reservationId"`
	Message       string              `json:"message"`
	Data          *domain.Reservation `json:"data"`
	EmailStatus   email.Status        `json:"emailStatus"`
}

type ValidateResult struct {
	Valid  bool                `json:"valid"`
	Errors []domain.FieldError `json:"errors"`
}

type GetReservationResult struct {
	Success bool                `json:"success"`
	Data    *domain.Reservation `json:"data"`
}

type ListReservationsResult struct {
	Success bool                 `json:"success"`
	Total   int                  `json:"total"`
	Data    []domain.Reservation `json:"data"`
}

type StatsResult struct {
	Success bool          `json:"success"`
	Data    *domain.Stats `json:"data"`
}

// CreateReservation submits through the queue with retry/backoff applied
// inside the queued operation.
func (c *Client) CreateReservation(ctx context.Context, sub Submission) (*CreateReservationResult, error) {
	return Enqueue(ctx, c.queue, func(ctx context.Context) (*CreateReservationResult, error) {
		return WithRetry(ctx, func(ctx context.Context) (*CreateReservationResult, error) {
			return doJSON[*CreateReservationResult](ctx, c, http.MethodPost, "/api/reservations", sub)
		}, c.retry)
	})
}

// ValidateFields asks the server for its authoritative verdict on the
// provided fields. Nil means "do not check this field".
func (c *Client) ValidateFields(ctx context.Context, emailAddr, phone *string) (*ValidateResult, error) {
	body := map[string]*string{"email": emailAddr, "phone": phone}
	return Enqueue(ctx, c.queue, func(ctx context.Context) (*ValidateResult, error) {
		return doJSON[*ValidateResult](ctx, c, http.MethodPost, "/api/validate", body)
	})
}

func (c *Client) GetReservation(ctx context.Context, id string) (*GetReservationResult, error) {
	return Enqueue(ctx, c.queue, func(ctx context.Context) (*GetReservationResult, error) {
		return WithRetry(ctx, func(ctx context.Context) (*GetReservationResult, error) {
			return doJSON[*GetReservationResult](ctx, c, http.MethodGet, "/api/reservations/"+id, nil)
		}, c.retry)
	})
}

func (c *Client) ListReservations(ctx context.Context) (*ListReservationsResult, error) {
	return Enqueue(ctx, c.queue, func(ctx context.Context) (*ListReservationsResult, error) {
		return WithRetry(ctx, func(ctx context.Context) (*ListReservationsResult, error) {
			return doJSON[*ListReservationsResult](ctx, c, http.MethodGet, "/api/admin/reservations", nil)
		}, c.retry)
	})
}

func (c *Client) GetStats(ctx context.Context) (*StatsResult, error) {
	return Enqueue(ctx, c.queue, func(ctx context.Context) (*StatsResult, error) {
		return WithRetry(ctx, func(ctx context.Context) (*StatsResult, error) {
			return doJSON[*StatsResult](ctx, c, http.MethodGet, "/api/admin/stats", nil)
		}, c.retry)
	})
}

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// doJSON performs one bounded HTTP round trip and normalizes failures into
// the package's error taxonomy.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return zero, normalizeHTTPError(resp.StatusCode, eb)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("invalid response from server (%d): %w", resp.StatusCode, err)
	}

	return out, nil
}

func normalizeHTTPError(status int, eb errorBody) error {
	switch status {
	case http.StatusBadRequest:
		if len(eb.Details) > 0 {
			return &ValidationFailedError{Details: eb.Details}
		}
		return &ValidationFailedError{Details: []string{eb.Error}}
	case http.StatusTooManyRequests:
		return &RateLimitError{}
	case http.StatusInternalServerError:
		return &ServerError{Status: status, Message: "Erro interno do servidor. Tente novamente em alguns instantes."}
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return &ServerError{Status: status, Message: "Servidor temporariamente indisponível. Tente novamente em alguns instantes."}
	default:
		msg := eb.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &ServerError{Status: status, Message: msg}
	}
}
