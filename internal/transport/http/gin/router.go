package httpgin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cookite/cookite-go/internal/domain"
	redisrepo "github.com/cookite/cookite-go/internal/repository/redis"
	redisx "github.com/cookite/cookite-go/internal/redis"
	"github.com/cookite/cookite-go/internal/service"
	"github.com/cookite/cookite-go/internal/service/reminder"
	"github.com/cookite/cookite-go/internal/service/reservation"
	"github.com/cookite/cookite-go/internal/validate"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "Cookite Reservations API"

func NewRouter(
	svcs *service.Services,
	limiter *redisrepo.SubmissionLimiter,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	api.GET("/health", handleHealth())

	api.POST("/validate", handleValidate())
	api.POST("/reservations", handleCreateReservation(svcs, limiter, idem))
	api.GET("/reservations/:id", handleGetReservation(svcs))

	// Unauthenticated by design: the admin view is a trusted, low-stakes
	// dashboard for the event organizers.
	admin := api.Group("/admin")
	{
		admin.GET("/reservations", handleListReservations(svcs))
		admin.GET("/stats", handleStats(svcs))
		admin.POST("/send-reminders", handleSendReminders(svcs))
		admin.POST("/send-reminder/:id", handleSendReminder(svcs))
		admin.GET("/reminder-stats", handleReminderStats(svcs))
	}

	return r
}

// @Summary  Health check
// @Success  200 {object} HealthResponse
// @Router   /api/health [get]
func handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   serviceName,
		})
	}
}

// @Summary  Validate email/phone fields
// @Param    req body ValidateRequest true "fields to check"
// @Success  200 {object} ValidateResponse
// @Router   /api/validate [post]
func handleValidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, ValidateResponse{
				Valid:  false,
				Errors: []domain.FieldError{{Field: "general", Message: "Erro na validação"}},
			})
			return
		}

		fieldErrs := []domain.FieldError{}

		if req.Email != nil && *req.Email != "" {
			switch {
			case !validate.IsValidEmail(*req.Email):
				fieldErrs = append(fieldErrs, domain.FieldError{Field: "email", Message: "Email inválido"})
			case validate.DeniedEmailDomain(*req.Email):
				fieldErrs = append(fieldErrs, domain.FieldError{Field: "email", Message: "Domínio do email inválido"})
			}
		}

		if req.Phone != nil && *req.Phone != "" {
			if !validate.IsValidBrazilianPhone(*req.Phone) {
				fieldErrs = append(fieldErrs, domain.FieldError{
					Field:   "phone",
					Message: "Número de telefone inválido. Use formato brasileiro (XX) XXXXX-XXXX",
				})
			}
		}

		c.JSON(http.StatusOK, ValidateResponse{Valid: len(fieldErrs) == 0, Errors: fieldErrs})
	}
}

// @Summary  Create reservation (idempotent via Idempotency-Key)
// @Param    req body CreateReservationRequest true "submission"
// @Success  201 {object} CreateReservationResponse
// @Failure  400 {object} ErrorResponse "all accumulated violations"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /api/reservations [post]
func handleCreateReservation(
	svcs *service.Services,
	limiter *redisrepo.SubmissionLimiter,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Dados inválidos",
				Details: []string{"corpo da requisição não é um JSON válido"},
			})
			return
		}

		if limiter != nil {
			allowed, retryAfter, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
			if err != nil {
				respondErr(c, err)
				return
			}
			if !allowed {
				c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Error: "Muitas tentativas. Aguarde alguns segundos e tente novamente.",
				})
				return
			}
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisx.KeyIdemReservation(idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "envio em andamento para esta chave"})
				return
			}
		}

		res, emailStatus, err := svcs.Reservation.Create(c.Request.Context(), req.toSubmission())
		if err != nil {
			if idemStorageKey != "" {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}

			var inv *reservation.InvalidSubmissionError
			if errors.As(err, &inv) {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Dados inválidos",
					Details: inv.Details,
				})
				return
			}

			respondErr(c, err)
			return
		}

		resp := CreateReservationResponse{
			Success:       true,
			ReservationID: res.ID,
			Message:       "Reserva confirmada com sucesso!",
			Data:          res,
			EmailStatus:   emailStatus,
		}

		if idemStorageKey != "" {
			if b, err := json.Marshal(resp); err == nil {
				_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			}
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Get reservation by code
// @Param    id path string true "Reservation code (CKJPxxxxxx)"
// @Success  200 {object} GetReservationResponse
// @Failure  404 {object} ErrorResponse
// @Router   /api/reservations/{id} [get]
func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := svcs.Reservation.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, GetReservationResponse{Success: true, Data: r})
	}
}

// @Summary  List all reservations, newest first
// @Success  200 {object} ListReservationsResponse
// @Router   /api/admin/reservations [get]
func handleListReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		reservations, err := svcs.Query.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, ListReservationsResponse{
			Success: true,
			Total:   len(reservations),
			Data:    reservations,
		}, "no-cache")
	}
}

// @Summary  Aggregate statistics
// @Success  200 {object} StatsResponse
// @Router   /api/admin/stats [get]
func handleStats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svcs.Query.Stats(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, StatsResponse{Success: true, Data: stats}, "no-cache")
	}
}

// @Summary  Run the milestone reminder batch
// @Success  200 {object} SendRemindersResponse
// @Router   /api/admin/send-reminders [post]
func handleSendReminders(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome, err := svcs.Reminder.Run(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		if !outcome.Triggered {
			c.JSON(http.StatusOK, SendRemindersResponse{
				Success:        true,
				Message:        fmt.Sprintf("No reminders scheduled for %d days before event", outcome.DaysUntilEvent),
				DaysUntilEvent: outcome.DaysUntilEvent,
			})
			return
		}

		c.JSON(http.StatusOK, SendRemindersResponse{
			Success:        true,
			Message:        fmt.Sprintf("Reminder batch completed for %d days before event", outcome.DaysUntilEvent),
			DaysUntilEvent: outcome.DaysUntilEvent,
			Results:        outcome.Results,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary  Send a manual reminder for one reservation
// @Param    id path string true "Reservation code"
// @Param    req body SendReminderRequest true "days until event"
// @Success  200 {object} SendReminderResponse
// @Failure  404 {object} ErrorResponse
// @Router   /api/admin/send-reminder/{id} [post]
func handleSendReminder(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendReminderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.DaysUntilEvent < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "daysUntilEvent is required and must be >= 1"})
			return
		}

		id := c.Param("id")
		status, err := svcs.Reminder.SendOne(c.Request.Context(), id, req.DaysUntilEvent)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, SendReminderResponse{
			Success:        status.Success,
			Message:        status.Message,
			ReservationID:  id,
			DaysUntilEvent: req.DaysUntilEvent,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary  Per-milestone reminder counts
// @Success  200 {object} ReminderStatsResponse
// @Router   /api/admin/reminder-stats [get]
func handleReminderStats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svcs.Reminder.Stats(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, ReminderStatsResponse{
			Success:   true,
			Data:      stats,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	case errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, reminder.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reserva não encontrada"})
		return
	}

	// Internal detail goes to the access log via c.Error, not to the client.
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Erro interno do servidor"})
}
