// Command remind runs the milestone reminder batch once and exits. It is
// the operator-triggered form of POST /api/admin/send-reminders, meant for
// a cron entry in the days before the event.
//
// Do not run two invocations concurrently for the same milestone: both can
// pass the already-sent check before either records its sends.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cookite/cookite-go/internal/config"
	"github.com/cookite/cookite-go/internal/email"
	"github.com/cookite/cookite-go/internal/redis"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
	"github.com/cookite/cookite-go/internal/service/reminder"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	rdb, err := redis.New(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Error("failed to initialize redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	store := redisrepo.NewReservationStore(rdb)
	mailer := email.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.From, logger)
	svc := reminder.New(store, mailer, reminder.Config{EventDate: cfg.Event.Date})

	outcome, err := svc.Run(ctx)
	if err != nil {
		logger.Error("reminder batch failed", "error", err)
		os.Exit(1)
	}

	if !outcome.Triggered {
		logger.Info("no reminders scheduled", "days_until_event", outcome.DaysUntilEvent)
		return
	}

	logger.Info("reminder batch completed",
		"days_until_event", outcome.DaysUntilEvent,
		"total", outcome.Results.Total,
		"sent", outcome.Results.Sent,
		"failed", outcome.Results.Failed,
	)

	if outcome.Results.Failed > 0 {
		os.Exit(1)
	}
}
