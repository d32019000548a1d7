package email

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/cookite/cookite-go/internal/domain"
)

var tmplFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("R$ %.2f", v) },
	"line": func(it domain.ReservationItem) string {
		return fmt.Sprintf("• %dx %s - R$ %.2f", it.Quantity, it.ProductName, float64(it.Quantity)*it.UnitPrice)
	},
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(tmplFuncs).Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>Confirmação de Reserva - Cookite JEPP</title></head>
  <body style="font-family:'Segoe UI',sans-serif;background:#f8f9fa;padding:20px;">
    <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:12px;overflow:hidden;">
      <div style="background:linear-gradient(135deg,#A8D0E6 0%,#FFE9A8 100%);padding:30px 20px;text-align:center;">
        <h1 style="color:#2c3e50;margin:0;">🍪 Cookite JEPP</h1>
        <p style="color:#34495e;">Confirmação de Reserva</p>
      </div>
      <div style="padding:30px;">
        <h2>Olá, {{.Customer.Name}}! 👋</h2>
        <p>Sua reserva foi confirmada com sucesso para o evento JEPP do Sebrae.</p>
        <div style="background:#A8D0E6;color:#2c3e50;padding:15px;border-radius:8px;text-align:center;font-size:24px;font-weight:bold;letter-spacing:2px;">{{.ID}}</div>
        <p style="text-align:center;color:#666;font-style:italic;">☝️ Este é seu código único de reserva. Guarde-o bem!</p>
        <div style="background:#f8f9fa;padding:20px;border-radius:8px;">
          <h3>📋 Detalhes da sua reserva:</h3>
          <div style="font-family:monospace;white-space:pre-line;">{{range .Items}}{{line .}}
{{end}}</div>
          {{if gt .Discount 0.0}}<p><strong>Subtotal:</strong> {{money .Subtotal}}</p>
          <p style="color:#e74c3c;"><strong>Desconto (20%):</strong> -{{money .Discount}}</p>{{end}}
          <p style="font-size:20px;font-weight:bold;color:#27ae60;text-align:right;">Total: {{money .Total}}</p>
        </div>
        <div style="background:#fff3cd;border:1px solid #ffeaa7;border-radius:6px;padding:15px;">
          <h3>📅 Informações do evento:</h3>
          <p><strong>Data:</strong> {{.EventDate}}</p>
          <p><strong>Local:</strong> {{.EventLocation}}</p>
          <p><strong>Retirada:</strong> Apresente este código na hora da retirada</p>
        </div>
        <p>Muito obrigado por escolher a Cookite! 🎉</p>
        <p style="color:#666;">Com carinho,<br><strong>Equipe Cookite</strong> 💙</p>
      </div>
      <div style="background:#2c3e50;color:#fff;padding:25px;text-align:center;font-size:14px;">
        <p><strong>Cookite - JEPP Sebrae</strong></p>
        <p>Doces especiais para momentos especiais</p>
      </div>
    </div>
  </body>
</html>`))

type reminderData struct {
	*domain.Reservation
	Countdown string
	Lead      string
}

var reminderTmpl = template.Must(template.New("reminder").Funcs(tmplFuncs).Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>Lembrete - Sua reserva Cookite JEPP</title></head>
  <body style="font-family:'Segoe UI',sans-serif;background:#f8f9fa;padding:20px;">
    <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:12px;overflow:hidden;">
      <div style="background:linear-gradient(135deg,#FFE9A8 0%,#A8D0E6 100%);padding:30px 20px;text-align:center;">
        <h1 style="color:#2c3e50;margin:0;">🍪 Cookite JEPP</h1>
        <p>⏰ Lembrete da sua Reserva</p>
      </div>
      <div style="padding:30px;">
        <h2>Olá, {{.Customer.Name}}! 👋</h2>
        <div style="background:#fff3cd;border:2px solid #ffeaa7;border-radius:12px;padding:20px;text-align:center;">
          <h2 style="color:#856404;margin:0 0 10px 0;">{{.Countdown}}</h2>
          <p style="margin:0;color:#856404;">{{.Lead}}</p>
        </div>
        <div style="background:#A8D0E6;color:#2c3e50;padding:15px;border-radius:8px;text-align:center;font-size:24px;font-weight:bold;letter-spacing:2px;">{{.ID}}</div>
        <p style="text-align:center;color:#666;font-style:italic;">☝️ Não esqueça do seu código de reserva!</p>
        <div style="background:#f8f9fa;padding:20px;border-radius:8px;">
          <h3>📋 Detalhes da sua reserva:</h3>
          <div style="font-family:monospace;white-space:pre-line;">{{range .Items}}{{line .}}
{{end}}</div>
          <p style="font-size:18px;font-weight:bold;color:#27ae60;text-align:right;">Total: {{money .Total}}</p>
        </div>
        <div style="background:#e8f5e8;border:2px solid #c3e6c3;border-radius:8px;padding:20px;">
          <h3 style="color:#2d6a2d;margin-top:0;">📍 Informações Importantes:</h3>
          <ul style="color:#2d6a2d;">
            <li><strong>Data:</strong> {{.EventDate}}</li>
            <li><strong>Local:</strong> {{.EventLocation}}</li>
            <li><strong>Pagamento:</strong> PIX ou dinheiro na retirada</li>
            <li><strong>O que levar:</strong> Este código de reserva</li>
          </ul>
        </div>
        <p style="color:#666;">Com muito carinho,<br><strong>Equipe Cookite</strong> 💙</p>
      </div>
      <div style="background:#2c3e50;color:#fff;padding:25px;text-align:center;font-size:14px;">
        <p><strong>Cookite - JEPP Sebrae</strong></p>
        <p>Doces especiais para momentos especiais</p>
      </div>
    </div>
  </body>
</html>`))

func renderConfirmation(r *domain.Reservation) (string, error) {
	var b strings.Builder
	if err := confirmationTmpl.Execute(&b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderReminder(r *domain.Reservation, daysUntilEvent int) (string, error) {
	data := reminderData{Reservation: r}
	if daysUntilEvent == 1 {
		data.Countdown = "AMANHÃ!"
		data.Lead = "Seu pedido Cookite estará pronto para retirada amanhã!"
	} else {
		data.Countdown = fmt.Sprintf("%d DIAS!", daysUntilEvent)
		data.Lead = fmt.Sprintf("Faltam apenas %d dias para retirar seus doces!", daysUntilEvent)
	}

	var b strings.Builder
	if err := reminderTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
