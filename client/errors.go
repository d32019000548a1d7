package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout marks a call that exceeded the 30-second network bound. It is
// surfaced as its own message and never retried by the retry policy.
var ErrTimeout = errors.New("Tempo limite excedido. Tente novamente.")

// ErrSubmissionInFlight rejects a second Submit while one is in flight.
var ErrSubmissionInFlight = errors.New("envio em andamento")

// ValidationFailedError carries field-scoped violations from either the
// local pass or the server's 400 response. Never retried; surfaced
// verbatim.
type ValidationFailedError struct {
	Details []string
}

func (e *ValidationFailedError) Error() string {
	if len(e.Details) == 0 {
		return "Dados inválidos"
	}
	return strings.Join(e.Details, ", ")
}

// RateLimitError is the 429 surface: the caller should wait and resubmit
// manually; it is not auto-retried.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "Muitas tentativas. Aguarde alguns segundos e tente novamente."
}

// ServerError is any non-validation HTTP failure. Its message embeds the
// status code, which is what the retry policy's substring classification
// keys on.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Erro %d: %s", e.Status, e.Message)
}

// IsTransientServerError classifies retryable failures the way the
// submission pipeline always has: a substring match for the 5xx codes
// worth retrying. Validation errors, 429s and timeouts never match.
func IsTransientServerError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503")
}
