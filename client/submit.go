package client

import (
	"context"
	"sync"
	"time"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/validate"
)

type SubmitState int

const (
	StateIdle SubmitState = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// API is what the Submitter needs from the transport; *Client satisfies it.
type API interface {
	CreateReservation(ctx context.Context, sub Submission) (*CreateReservationResult, error)
	ValidateFields(ctx context.Context, email, phone *string) (*ValidateResult, error)
}

// Submitter drives one reservation form through
// Idle → Validating → Submitting → Succeeded | Failed → Idle.
//
// Entry into Submitting requires at least one chosen item and a clean local
// validation pass; totals are computed once at that point and frozen for
// the flight. Success fully resets the form state (quantities, customer
// info, field errors, validation cache); failure preserves it so the user
// can correct and resubmit. Reset returns to Idle from Succeeded only.
type Submitter struct {
	api   API
	cache *ValidationCache

	mu            sync.Mutex
	state         SubmitState
	quantities    map[string]int
	customer      domain.Customer
	fieldErrors   map[string]string
	attempted     bool
	debounce      *time.Timer
	debounceDelay time.Duration
	result        *CreateReservationResult
	lastErr       string
}

func NewSubmitter(api API, cache *ValidationCache) *Submitter {
	if cache == nil {
		cache = NewValidationCache(0)
	}
	return &Submitter{
		api:           api,
		cache:         cache,
		state:         StateIdle,
		quantities:    make(map[string]int),
		fieldErrors:   make(map[string]string),
		debounceDelay: 300 * time.Millisecond,
	}
}

func (s *Submitter) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) Result() *CreateReservationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Submitter) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// FieldErrors returns a copy of the current per-field messages.
func (s *Submitter) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.fieldErrors))
	for k, v := range s.fieldErrors {
		out[k] = v
	}
	return out
}

// AdjustQuantity changes one product's quantity by delta, floored at zero.
func (s *Submitter) AdjustQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.quantities[productID] + delta
	if q < 0 {
		q = 0
	}
	s.quantities[productID] = q
}

func (s *Submitter) SetName(v string) {
	s.mu.Lock()
	s.customer.Name = v
	s.mu.Unlock()
	s.scheduleValidation()
}

func (s *Submitter) SetEmail(v string) {
	s.mu.Lock()
	s.customer.Email = v
	s.mu.Unlock()
	s.scheduleValidation()
}

// SetPhone applies the progressive Brazilian mask as the user types.
func (s *Submitter) SetPhone(raw string) {
	s.mu.Lock()
	s.customer.Phone = validate.FormatPhone(raw)
	s.mu.Unlock()
	s.scheduleValidation()
}

func (s *Submitter) SetNotes(v string) {
	s.mu.Lock()
	s.customer.Notes = v
	s.mu.Unlock()
}

func (s *Submitter) Customer() domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// Items resolves the chosen quantities against the catalog, excluding
// zero-quantity products.
func (s *Submitter) Items() []domain.ReservationItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

func (s *Submitter) itemsLocked() []domain.ReservationItem {
	var items []domain.ReservationItem
	for _, p := range domain.Catalog {
		if q := s.quantities[p.ID]; q > 0 {
			items = append(items, domain.ReservationItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    q,
				UnitPrice:   p.Price,
			})
		}
	}
	return items
}

// Totals computes the current subtotal, discount and total.
func (s *Submitter) Totals() (subtotal, discount, total float64) {
	return domain.Totals(s.Items())
}

// Submit runs the full pipeline. A zero-item or locally invalid form fails
// before any network call is made.
func (s *Submitter) Submit(ctx context.Context) (*CreateReservationResult, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	s.state = StateValidating
	s.attempted = true

	items := s.itemsLocked()
	if domain.TotalQuantity(items) == 0 {
		s.state = StateFailed
		s.lastErr = "Selecione pelo menos um produto"
		s.mu.Unlock()
		return nil, &ValidationFailedError{Details: []string{"Selecione pelo menos um produto"}}
	}

	if errs := validate.Customer(validate.FullCustomer(s.customer)); len(errs) > 0 {
		s.fieldErrors = make(map[string]string, len(errs))
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			s.fieldErrors[e.Field] = e.Message
			details = append(details, e.Message)
		}
		s.state = StateFailed
		s.lastErr = "Dados inválidos"
		s.mu.Unlock()
		return nil, &ValidationFailedError{Details: details}
	}

	// Totals are frozen here; nothing recomputes them while in flight.
	subtotal, discount, total := domain.Totals(items)
	sub := Submission{
		Customer: s.customer,
		Items:    items,
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	result, err := s.api.CreateReservation(ctx, sub)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		s.lastErr = err.Error()
		return nil, err
	}

	s.state = StateSucceeded
	s.result = result
	s.resetFormLocked()

	return result, nil
}

// Reset starts a new reservation. It only acts from Succeeded.
func (s *Submitter) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSucceeded {
		return
	}
	s.state = StateIdle
	s.result = nil
	s.lastErr = ""
}

func (s *Submitter) resetFormLocked() {
	s.quantities = make(map[string]int)
	s.customer = domain.Customer{}
	s.fieldErrors = make(map[string]string)
	s.attempted = false
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.cache.Clear()
}

// ValidateFieldOnBlur checks one field against the server, consulting the
// validation cache first so the exact same value is checked at most once.
func (s *Submitter) ValidateFieldOnBlur(ctx context.Context, field string) (bool, error) {
	s.mu.Lock()
	var value string
	switch field {
	case "email":
		value = s.customer.Email
	case "phone":
		value = s.customer.Phone
	default:
		s.mu.Unlock()
		return true, nil
	}
	s.mu.Unlock()

	if value == "" {
		return true, nil
	}

	return s.cache.Lookup(ctx, field, value, func(ctx context.Context) (bool, error) {
		var emailArg, phoneArg *string
		if field == "email" {
			emailArg = &value
		} else {
			phoneArg = &value
		}

		res, err := s.api.ValidateFields(ctx, emailArg, phoneArg)
		if err != nil {
			return false, err
		}
		return res.Valid, nil
	})
}

// scheduleValidation re-runs the local pass after a 300ms quiet period,
// but only once a submission has been attempted. Each edit restarts the
// timer, so validation never fires per keystroke.
func (s *Submitter) scheduleValidation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attempted {
		return
	}

	if s.debounce != nil {
		s.debounce.Stop()
	}

	s.debounce = time.AfterFunc(s.debounceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.fieldErrors = make(map[string]string)
		for _, e := range validate.Customer(validate.FullCustomer(s.customer)) {
			s.fieldErrors[e.Field] = e.Message
		}
	})
}
