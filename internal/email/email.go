// Package email sends transactional mail through Resend. Delivery is
// best-effort everywhere it is used: a reservation is never rolled back
// because its email could not be sent.
package email

// Status reports the outcome of one send attempt. It travels back to the
// client alongside a successful reservation so the UI can warn that the
// confirmation may not have been delivered.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NotConfigured() Status {
	return Status{Success: false, Message: "API key não configurada"}
}
