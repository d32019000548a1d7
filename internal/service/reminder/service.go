package reminder

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/email"
	"github.com/cookite/cookite-go/internal/repository"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
)

// Milestones are the day-offsets before the event at which reminders go
// out. A reservation receives at most one reminder per milestone.
var Milestones = []int{7, 3, 1}

var ErrReservationNotFound = errors.New("reservation not found")

// Mailer sends a reminder email for one reservation.
type Mailer interface {
	SendReminder(ctx context.Context, r *domain.Reservation, daysUntilEvent int) email.Status
}

type Config struct {
	// EventDate in YYYY-MM-DD form.
	EventDate string
	// SendDelay self-throttles the batch against the email provider's
	// rate limits. Defaults to 100ms.
	SendDelay time.Duration
}

type Service struct {
	store  *redisrepo.ReservationStore
	mailer Mailer
	cfg    Config
	now    func() time.Time
}

func New(store *redisrepo.ReservationStore, mailer Mailer, cfg Config) *Service {
	if cfg.SendDelay <= 0 {
		cfg.SendDelay = 100 * time.Millisecond
	}

	return &Service{
		store:  store,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// DaysUntilEvent counts the days from now to the event date, rounding any
// partial day up, so the morning of the day before the event reports 1.
func DaysUntilEvent(eventDate string, now time.Time) (int, error) {
	event, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		return 0, fmt.Errorf("invalid event date: %w", err)
	}

	diff := event.Sub(now)
	return int(math.Ceil(diff.Hours() / 24)), nil
}

// Outcome reports one batch invocation. Results is nil when the current day
// offset is not a milestone and nothing was attempted.
type Outcome struct {
	DaysUntilEvent int
	Triggered      bool
	Results        *domain.BatchResults
}

// Run executes the milestone batch: when the event is exactly 7, 3 or 1
// days away it sends one reminder per stored, confirmed reservation not
// already reminded at that milestone.
//
// Two concurrent runs for the same milestone can both pass the
// already-sent check before either records its sends, duplicating emails.
// Acceptable for a low-volume, operator-triggered job; do not schedule it
// concurrently.
func (s *Service) Run(ctx context.Context) (*Outcome, error) {
	const op = "service.reminder.Run"

	days, err := DaysUntilEvent(s.cfg.EventDate, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !isMilestone(days) {
		return &Outcome{DaysUntilEvent: days}, nil
	}

	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := &domain.BatchResults{}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		results.Total++

		sent, err := s.store.WasReminded(ctx, days, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sent {
			continue
		}

		r, err := s.store.Get(ctx, id)
		if err != nil || r.Status != domain.StatusConfirmed {
			continue
		}

		status := s.mailer.SendReminder(ctx, r, days)
		if status.Success {
			results.Sent++
			if err := s.store.MarkReminded(ctx, days, id); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		} else {
			results.Failed++
			results.Errors = append(results.Errors, domain.BatchFailure{
				ReservationID: id,
				Email:         r.Customer.Email,
				Error:         status.Message,
			})
		}

		if i < len(ids)-1 {
			select {
			case <-time.After(s.cfg.SendDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			}
		}
	}

	return &Outcome{DaysUntilEvent: days, Triggered: true, Results: results}, nil
}

// SendOne sends a manual reminder for a single reservation. It does not
// mark the milestone as sent, so the batch may still send its own.
func (s *Service) SendOne(ctx context.Context, id string, daysUntilEvent int) (email.Status, error) {
	const op = "service.reminder.SendOne"

	r, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return email.Status{}, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return email.Status{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.mailer.SendReminder(ctx, r, daysUntilEvent), nil
}

// Stats reports, per milestone, how many and which reservations were
// already reminded.
func (s *Service) Stats(ctx context.Context) (*domain.ReminderStats, error) {
	const op = "service.reminder.Stats"

	days, err := DaysUntilEvent(s.cfg.EventDate, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event, _ := time.Parse("2006-01-02", s.cfg.EventDate)

	stats := &domain.ReminderStats{
		DaysUntilEvent: days,
		EventDate:      event.UTC().Format(time.RFC3339),
		RemindersSent:  make(map[string]domain.MilestoneStats),
	}

	for _, m := range Milestones {
		ids, err := s.store.RemindedIDs(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.RemindersSent[fmt.Sprintf("%d_days", m)] = domain.MilestoneStats{
			Count:          len(ids),
			ReservationIDs: ids,
		}
	}

	return stats, nil
}

func isMilestone(days int) bool {
	for _, m := range Milestones {
		if days == m {
			return true
		}
	}
	return false
}
