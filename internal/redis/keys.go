package redis

import "fmt"

// Key layout shared with the original deployment; changing these breaks
// already-persisted reservations.

const KeyAllReservations = "all_reservations"

func KeyReservation(id string) string {
	return "reservation:" + id
}

func KeyRemindersSent(daysUntilEvent int) string {
	return fmt.Sprintf("reminders_sent_%ddays", daysUntilEvent)
}

// KeyRateLimit namespaces the submission rate limiter away from the
// persisted reservation keys.
func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("cookite:rl:%s:%s", scope, id)
}

// KeyIdemReservation stores the replayed response for an Idempotency-Key
// presented on reservation submission.
func KeyIdemReservation(idemKey string) string {
	return "cookite:idem:reservations:" + idemKey
}
