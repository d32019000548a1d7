package domain

import "time"

type ReservationStatus string

const (
	// StatusConfirmed is the only status this design models: a reservation
	// is created confirmed and is never updated or deleted.
	StatusConfirmed ReservationStatus = "confirmed"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes,omitempty"`
}

type ReservationItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Reservation struct {
	ID            string            `json:"id"`
	Customer      Customer          `json:"customer"`
	Items         []ReservationItem `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	Discount      float64           `json:"discount"`
	Total         float64           `json:"total"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	EventDate     string            `json:"eventDate"`
	EventLocation string            `json:"eventLocation"`
}

// Stats is the aggregate view over every indexed reservation, recomputed by
// a full scan on each call.
type Stats struct {
	TotalReservations int            `json:"totalReservations"`
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalItems        int            `json:"totalItems"`
	ProductStats      map[string]int `json:"productStats"`
}

// FieldError is a single field-scoped validation failure. Field is one of
// "name", "email", "phone" or "general"; Message is user-facing pt-BR text.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

type MilestoneStats struct {
	Count          int      `json:"count"`
	ReservationIDs []string `json:"reservationIds"`
}

type ReminderStats struct {
	DaysUntilEvent int                       `json:"daysUntilEvent"`
	EventDate      string                    `json:"eventDate"`
	RemindersSent  map[string]MilestoneStats `json:"remindersSent"`
}

// BatchResults summarizes one reminder batch run.
type BatchResults struct {
	Total  int            `json:"total"`
	Sent   int            `json:"sent"`
	Failed int            `json:"failed"`
	Errors []BatchFailure `json:"errors"`
}

type BatchFailure struct {
	ReservationID string `json:"reservationId"`
	Email         string `json:"email,omitempty"`
	Error         string `json:"error"`
}
