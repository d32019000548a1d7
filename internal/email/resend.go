package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cookite/cookite-go/internal/domain"
	"github.com/resend/resend-go/v2"
)

// ResendMailer sends confirmation and reminder emails via the Resend API.
// With no API key configured every send is skipped and reported as not
// delivered.
type ResendMailer struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

func NewResendMailer(apiKey, from string, logger *slog.Logger) *ResendMailer {
	m := &ResendMailer{from: from, logger: logger}
	if apiKey != "" {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

func (m *ResendMailer) SendConfirmation(ctx context.Context, r *domain.Reservation) Status {
	if m.client == nil {
		m.logger.Info("resend api key not configured, skipping confirmation email", "reservation_id", r.ID)
		return NotConfigured()
	}

	subject := fmt.Sprintf("🍪 Reserva Confirmada - Código %s | Cookite JEPP", r.ID)

	html, err := renderConfirmation(r)
	if err != nil {
		m.logger.Error("failed to render confirmation email", "reservation_id", r.ID, "error", err)
		return Status{Success: false, Message: "Erro ao enviar email"}
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{r.Customer.Email},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		m.logger.Error("failed to send confirmation email",
			"reservation_id", r.ID, "to", r.Customer.Email, "error", err)
		return Status{Success: false, Message: "Erro ao enviar email"}
	}

	m.logger.Info("confirmation email sent",
		"reservation_id", r.ID, "to", r.Customer.Email, "email_id", sent.Id)
	return Status{Success: true, Message: "Email enviado com sucesso"}
}

func (m *ResendMailer) SendReminder(ctx context.Context, r *domain.Reservation, daysUntilEvent int) Status {
	if m.client == nil {
		m.logger.Info("resend api key not configured, skipping reminder email", "reservation_id", r.ID)
		return NotConfigured()
	}

	countdown := fmt.Sprintf("%d dias!", daysUntilEvent)
	if daysUntilEvent == 1 {
		countdown = "AMANHÃ!"
	}
	subject := fmt.Sprintf("⏰ %s Lembrete da sua reserva Cookite | %s", countdown, r.ID)

	html, err := renderReminder(r, daysUntilEvent)
	if err != nil {
		m.logger.Error("failed to render reminder email", "reservation_id", r.ID, "error", err)
		return Status{Success: false, Message: "Erro ao enviar lembrete"}
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{r.Customer.Email},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		m.logger.Error("failed to send reminder email",
			"reservation_id", r.ID, "to", r.Customer.Email, "error", err)
		return Status{Success: false, Message: "Erro ao enviar lembrete"}
	}

	m.logger.Info("reminder email sent",
		"reservation_id", r.ID, "to", r.Customer.Email,
		"days_until_event", daysUntilEvent, "email_id", sent.Id)
	return Status{Success: true, Message: "Lembrete enviado com sucesso"}
}
