package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cookite/cookite-go/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Config{
		BaseURL:            srv.URL,
		MinRequestInterval: time.Millisecond,
		Retry:              fastRetry(),
	})
	t.Cleanup(c.Close)
	return c
}

func TestClient_CreateReservation(t *testing.T) {
	var gotBody Submission
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/reservations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateReservationResult{
			Success:       true,
			ReservationID: "CKJP654321",
			Message:       "Reserva confirmada com sucesso!",
		})
	}))

	sub := Submission{
		Customer: domain.Customer{Name: "Maria Silva", Email: "maria@gmail.com", Phone: "(11) 99999-9999"},
		Items:    []domain.ReservationItem{{ProductID: "cookie", ProductName: "Cookie", Quantity: 2, UnitPrice: 7.00}},
		Subtotal: 14.00, Discount: 2.80, Total: 11.20,
	}
	res, err := c.CreateReservation(context.Background(), sub)
	if err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	if res.ReservationID != "CKJP654321" {
		t.Errorf("ReservationID = %q", res.ReservationID)
	}
	if gotBody.Total != 11.20 {
		t.Errorf("server saw Total = %v, want 11.20", gotBody.Total)
	}
}

func TestClient_CreateReservation_ValidationDetails(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   "Dados inválidos",
			"details": []string{"Nome é obrigatório", "Email inválido"},
		})
	}))

	_, err := c.CreateReservation(context.Background(), Submission{})

	var ve *ValidationFailedError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationFailedError", err)
	}
	if len(ve.Details) != 2 || ve.Details[0] != "Nome é obrigatório" {
		t.Errorf("Details = %v", ve.Details)
	}
}

func TestClient_RateLimitNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "6")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "Muitas tentativas"})
	}))

	_, err := c.CreateReservation(context.Background(), Submission{})

	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestClient_TransientFailureRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(StatsResult{Success: true, Data: &domain.Stats{TotalReservations: 4}})
	}))

	res, err := c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if res.Data.TotalReservations != 4 {
		t.Errorf("TotalReservations = %d, want 4", res.Data.TotalReservations)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestClient_TimeoutSurfacedAsErrTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)

	c := New(Config{
		BaseURL:            srv.URL,
		RequestTimeout:     20 * time.Millisecond,
		MinRequestInterval: time.Millisecond,
		Retry:              RetryOptions{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxJitter: time.Millisecond},
	})
	t.Cleanup(c.Close)

	_, err := c.GetReservation(context.Background(), "CKJP000000")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ListReservationsResult{Success: true})
	}))
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL, APIKey: "secret", MinRequestInterval: time.Millisecond})
	t.Cleanup(c.Close)

	if _, err := c.ListReservations(context.Background()); err != nil {
		t.Fatalf("ListReservations() error = %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
}
