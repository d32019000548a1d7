package reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/email"
	"github.com/cookite/cookite-go/internal/repository"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
	"github.com/cookite/cookite-go/internal/validate"
)

// Mailer sends the confirmation email for a freshly created reservation.
type Mailer interface {
	SendConfirmation(ctx context.Context, r *domain.Reservation) email.Status
}

type Config struct {
	EventDate     string
	EventLocation string
}

// Submission is the payload a client sends to create a reservation. The
// totals are the client-computed values frozen at submission time; they are
// persisted as submitted.
type Submission struct {
	Customer domain.Customer
	Items    []domain.ReservationItem
	Subtotal float64
	Discount float64
	Total    float64
}

type Service struct {
	store  *redisrepo.ReservationStore
	mailer Mailer
	cfg    Config
	now    func() time.Time
}

func New(store *redisrepo.ReservationStore, mailer Mailer, cfg Config) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// NewID derives a reservation code from the timestamp: CKJP plus the last
// six digits of the unix-millisecond clock. Two creations sharing those six
// trailing digits collide; the window is accepted for this event's volume.
func NewID(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	return "CKJP" + ms[len(ms)-6:]
}

// Create re-validates the submission server-side, persists the reservation
// and its index entry, and attempts the confirmation email. Email failure
// never rolls the reservation back; the returned status reports it.
func (s *Service) Create(ctx context.Context, sub Submission) (*domain.Reservation, email.Status, error) {
	const op = "service.reservation.Create"

	if details := s.validateSubmission(sub); len(details) > 0 {
		return nil, email.Status{}, &InvalidSubmissionError{Details: details}
	}

	now := s.now().UTC()

	r := &domain.Reservation{
		ID: NewID(now),
		Customer: domain.Customer{
			Name:  strings.TrimSpace(sub.Customer.Name),
			Phone: strings.TrimSpace(sub.Customer.Phone),
			Email: strings.ToLower(strings.TrimSpace(sub.Customer.Email)),
			Notes: strings.TrimSpace(sub.Customer.Notes),
		},
		Items:         sub.Items,
		Subtotal:      sub.Subtotal,
		Discount:      sub.Discount,
		Total:         sub.Total,
		Status:        domain.StatusConfirmed,
		CreatedAt:     now,
		EventDate:     s.cfg.EventDate,
		EventLocation: s.cfg.EventLocation,
	}

	// Record first, index second. Not atomic: a crash in between leaves
	// the record reachable by id but absent from listings and stats.
	if err := s.store.Save(ctx, r); err != nil {
		return nil, email.Status{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.AppendIndex(ctx, r.ID); err != nil {
		return nil, email.Status{}, fmt.Errorf("%s: %w", op, err)
	}

	status := s.mailer.SendConfirmation(ctx, r)

	return r, status, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	const op = "service.reservation.Get"

	r, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

// validateSubmission is the authoritative pass: it does not trust anything
// the client already checked and accumulates every violation.
func (s *Service) validateSubmission(sub Submission) []string {
	var details []string

	if strings.TrimSpace(sub.Customer.Name) == "" {
		details = append(details, "Nome é obrigatório")
	}

	emailAddr := strings.TrimSpace(sub.Customer.Email)
	switch {
	case emailAddr == "":
		details = append(details, "Email é obrigatório")
	case !validate.IsValidEmail(emailAddr):
		details = append(details, "Email inválido")
	case validate.DeniedEmailDomain(emailAddr):
		details = append(details, "Domínio do email inválido ou suspeito")
	}

	phone := strings.TrimSpace(sub.Customer.Phone)
	switch {
	case phone == "":
		details = append(details, "Telefone é obrigatório")
	case !validate.IsValidBrazilianPhone(phone):
		details = append(details, "Número de telefone inválido. Use formato brasileiro (XX) XXXXX-XXXX")
	}

	if len(sub.Items) == 0 {
		details = append(details, "Selecione pelo menos um produto")
	}

	return details
}
