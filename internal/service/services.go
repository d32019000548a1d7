package service

import (
	"context"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/email"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
	"github.com/cookite/cookite-go/internal/service/query"
	"github.com/cookite/cookite-go/internal/service/reminder"
	"github.com/cookite/cookite-go/internal/service/reservation"
)

type Services struct {
	Reservation *reservation.Service
	Query       *query.Service
	Reminder    *reminder.Service
}

type Config struct {
	Reservation reservation.Config
	Reminder    reminder.Config
}

// Mailer is the union of what the individual services need from the email
// layer; *email.ResendMailer satisfies it.
type Mailer interface {
	SendConfirmation(ctx context.Context, r *domain.Reservation) email.Status
	SendReminder(ctx context.Context, r *domain.Reservation, daysUntilEvent int) email.Status
}

func NewServices(store *redisrepo.ReservationStore, mailer Mailer, cfg Config) *Services {
	return &Services{
		Reservation: reservation.New(store, mailer, cfg.Reservation),
		Query:       query.New(store),
		Reminder:    reminder.New(store, mailer, cfg.Reminder),
	}
}
