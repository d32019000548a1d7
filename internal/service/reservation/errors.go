package reservation

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("reservation not found")
)

// InvalidSubmissionError carries every violation found by the authoritative
// server-side pass. The handler returns all of them together in the 400
// body; nothing is persisted.
type InvalidSubmissionError struct {
	Details []string
}

func (e *InvalidSubmissionError) Error() string {
	return "dados inválidos: " + strings.Join(e.Details, "; ")
}
