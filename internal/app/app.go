package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cookite/cookite-go/internal/config"
	"github.com/cookite/cookite-go/internal/email"
	"github.com/cookite/cookite-go/internal/redis"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
	"github.com/cookite/cookite-go/internal/service"
	"github.com/cookite/cookite-go/internal/service/reminder"
	"github.com/cookite/cookite-go/internal/service/reservation"
	httpgin "github.com/cookite/cookite-go/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	rdb, err := redis.New(context.Background(), redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	store := redisrepo.NewReservationStore(rdb)
	limiter := redisrepo.NewSubmissionLimiter(rdb, "reservations", 10, 1*time.Minute)
	idem := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	mailer := email.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.From, logger)

	svcs := service.NewServices(store, mailer, service.Config{
		Reservation: reservation.Config{
			EventDate:     cfg.Event.Date,
			EventLocation: cfg.Event.Location,
		},
		Reminder: reminder.Config{
			EventDate: cfg.Event.Date,
		},
	})

	router := httpgin.NewRouter(svcs, limiter, idem, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
