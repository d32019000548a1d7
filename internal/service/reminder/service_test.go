package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/email"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
)

type fakeMailer struct {
	calls   []string
	days    []int
	failFor map[string]bool
}

func (m *fakeMailer) SendReminder(ctx context.Context, r *domain.Reservation, daysUntilEvent int) email.Status {
	m.calls = append(m.calls, r.ID)
	m.days = append(m.days, daysUntilEvent)
	if m.failFor[r.ID] {
		return email.Status{Success: false, Message: "provider rejected"}
	}
	return email.Status{Success: true, Message: "Email enviado"}
}

func newTestService(t *testing.T, mailer Mailer, eventDate string, now time.Time) (*Service, *redisrepo.ReservationStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := redisrepo.NewReservationStore(rdb)
	svc := New(store, mailer, Config{EventDate: eventDate, SendDelay: time.Millisecond})
	svc.now = func() time.Time { return now }
	return svc, store
}

func seed(t *testing.T, store *redisrepo.ReservationStore, id string, status domain.ReservationStatus) {
	t.Helper()

	ctx := context.Background()
	r := &domain.Reservation{
		ID:       id,
		Customer: domain.Customer{Name: "Maria Silva", Email: "maria@gmail.com"},
		Status:   status,
	}
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save(%s): %v", id, err)
	}
	if err := store.AppendIndex(ctx, id); err != nil {
		t.Fatalf("AppendIndex(%s): %v", id, err)
	}
}

func TestDaysUntilEvent(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"seven days before", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC), 7},
		{"partial day rounds up", time.Date(2025, 9, 11, 9, 30, 0, 0, time.UTC), 1},
		{"event day", time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC), 0},
		{"after the event", time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysUntilEvent("2025-09-12", tt.now)
			if err != nil {
				t.Fatalf("DaysUntilEvent() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysUntilEvent() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := DaysUntilEvent("not-a-date", time.Now()); err == nil {
		t.Error("DaysUntilEvent(malformed) error = nil, want parse failure")
	}
}

func TestRun_NonMilestoneDoesNothing(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)

	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Triggered {
		t.Error("Triggered = true on a non-milestone day")
	}
	if out.DaysUntilEvent != 5 {
		t.Errorf("DaysUntilEvent = %d, want 5", out.DaysUntilEvent)
	}
	if len(mailer.calls) != 0 {
		t.Errorf("reminders sent on a non-milestone day: %v", mailer.calls)
	}
}

func TestRun_MilestoneSendsOncePerReservation(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)
	seed(t, store, "CKJP000002", domain.StatusConfirmed)

	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !out.Triggered {
		t.Fatal("Triggered = false on a milestone day")
	}
	if out.Results.Total != 2 || out.Results.Sent != 2 || out.Results.Failed != 0 {
		t.Errorf("Results = %+v, want total 2 sent 2", out.Results)
	}
	if len(mailer.days) == 0 || mailer.days[0] != 7 {
		t.Errorf("days passed to mailer = %v, want 7", mailer.days)
	}

	// Second run of the same milestone sends nothing.
	out, err = svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if out.Results.Sent != 0 {
		t.Errorf("second run Sent = %d, want 0", out.Results.Sent)
	}
	if len(mailer.calls) != 2 {
		t.Errorf("mailer called %d times across both runs, want 2", len(mailer.calls))
	}
}

func TestRun_MilestonesTrackedIndependently(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("7-day Run() error = %v", err)
	}

	// Same reservation is reminded again at the next milestone.
	svc.now = func() time.Time { return time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC) }
	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("3-day Run() error = %v", err)
	}
	if out.DaysUntilEvent != 3 || out.Results.Sent != 1 {
		t.Errorf("3-day run = %+v, want one send", out)
	}
	if len(mailer.calls) != 2 {
		t.Errorf("mailer called %d times, want 2", len(mailer.calls))
	}
}

func TestRun_FailedSendNotMarked(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]bool{"CKJP000001": true}}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)
	seed(t, store, "CKJP000002", domain.StatusConfirmed)

	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Results.Sent != 1 || out.Results.Failed != 1 {
		t.Errorf("Results = %+v, want one sent one failed", out.Results)
	}
	if len(out.Results.Errors) != 1 || out.Results.Errors[0].ReservationID != "CKJP000001" {
		t.Errorf("Errors = %+v", out.Results.Errors)
	}

	// The failure was not marked, so the next run retries it.
	mailer.failFor = nil
	out, err = svc.Run(context.Background())
	if err != nil {
		t.Fatalf("retry Run() error = %v", err)
	}
	if out.Results.Sent != 1 {
		t.Errorf("retry run Sent = %d, want 1", out.Results.Sent)
	}
}

func TestRun_SkipsUnresolvableRecords(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)
	// Index entry with no record behind it.
	if err := store.AppendIndex(context.Background(), "CKJP999999"); err != nil {
		t.Fatalf("AppendIndex: %v", err)
	}

	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Results.Total != 2 || out.Results.Sent != 1 || out.Results.Failed != 0 {
		t.Errorf("Results = %+v, want only the resolvable record sent", out.Results)
	}
}

func TestSendOne(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)

	status, err := svc.SendOne(context.Background(), "CKJP000001", 3)
	if err != nil {
		t.Fatalf("SendOne() error = %v", err)
	}
	if !status.Success {
		t.Errorf("status = %+v, want success", status)
	}
	if len(mailer.days) != 1 || mailer.days[0] != 3 {
		t.Errorf("days = %v, want [3]", mailer.days)
	}

	// A manual send does not mark the milestone; the batch still fires.
	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Results.Sent != 1 {
		t.Errorf("batch after manual send Sent = %d, want 1", out.Results.Sent)
	}
}

func TestSendOne_NotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeMailer{}, "2025-09-12", time.Now())

	_, err := svc.SendOne(context.Background(), "CKJP000000", 7)
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("SendOne() error = %v, want ErrReservationNotFound", err)
	}
}

func TestStats(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newTestService(t, mailer, "2025-09-12", time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC))
	seed(t, store, "CKJP000001", domain.StatusConfirmed)
	seed(t, store, "CKJP000002", domain.StatusConfirmed)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.DaysUntilEvent != 7 {
		t.Errorf("DaysUntilEvent = %d, want 7", stats.DaysUntilEvent)
	}
	if got := stats.RemindersSent["7_days"].Count; got != 2 {
		t.Errorf("7_days count = %d, want 2", got)
	}
	for _, m := range []string{"3_days", "1_days"} {
		if got := stats.RemindersSent[m].Count; got != 0 {
			t.Errorf("%s count = %d, want 0", m, got)
		}
	}
}
