package httpgin

import (
	"github.com/cookite/cookite-go/internal/domain"
	"github.com/cookite/cookite-go/internal/email"
	"github.com/cookite/cookite-go/internal/service/reservation"
)

// Request payloads bind loosely on purpose: missing or empty fields survive
// the decode step so the authoritative validation pass can report every
// violation together instead of failing on the first binding error.

type ValidateRequest struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type ValidateResponse struct {
	Valid  bool               `json:"valid"`
	Errors []domain.FieldError `json:"errors"`
}

type CustomerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type ItemPayload struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type CreateReservationRequest struct {
	Customer CustomerPayload `json:"customer"`
	Items    []ItemPayload   `json:"items"`
	Subtotal float64         `json:"subtotal"`
	Discount float64         `json:"discount"`
	Total    float64         `json:"total"`
}

func (req *CreateReservationRequest) toSubmission() reservation.Submission {
	items := make([]domain.ReservationItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.ReservationItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	return reservation.Submission{
		Customer: domain.Customer{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
			Notes: req.Customer.Notes,
		},
		Items:    items,
		Subtotal: req.Subtotal,
		Discount: req.Discount,
		Total:    req.Total,
	}
}

type CreateReservationResponse struct {
	Success       bool                `json:"success"`
	ReservationID string              `json:"reservationId"`
	Message       string              `json:"message"`
	Data          *domain.Reservation `json:"data"`
	EmailStatus   email.Status        `json:"emailStatus"`
}

type GetReservationResponse struct {
	Success bool                `json:"success"`
	Data    *domain.Reservation `json:"data"`
}

type ListReservationsResponse struct {
	Success bool                 `json:"success"`
	Total   int                  `json:"total"`
	Data    []domain.Reservation `json:"data"`
}

type StatsResponse struct {
	Success bool          `json:"success"`
	Data    *domain.Stats `json:"data"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type SendRemindersResponse struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message"`
	DaysUntilEvent int                  `json:"daysUntilEvent"`
	Results        *domain.BatchResults `json:"results,omitempty"`
	Timestamp      string               `json:"timestamp,omitempty"`
}

type SendReminderRequest struct {
	DaysUntilEvent int `json:"daysUntilEvent"`
}

type SendReminderResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ReservationID  string `json:"reservationId"`
	DaysUntilEvent int    `json:"daysUntilEvent"`
	Timestamp      string `json:"timestamp"`
}

type ReminderStatsResponse struct {
	Success   bool                  `json:"success"`
	Data      *domain.ReminderStats `json:"data"`
	Timestamp string                `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
