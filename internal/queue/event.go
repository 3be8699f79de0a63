// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records confirmed enrollments.
package queue

// EnrollmentConfirmedEvent is published after a settlement commits.  It
// carries enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type EnrollmentConfirmedEvent struct {
	PaymentID    uint64 `json:"payment_id"`
	StudentEmail string `json:"student_email"`
	ClassID      uint64 `json:"class_id"`
	ClassName    string `json:"class_name"`
	AmountCents  uint32 `json:"amount_cents"`
	Currency     string `json:"currency"`
	ConfirmedAt  string `json:"confirmed_at"`
}
