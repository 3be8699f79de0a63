package model

import "time"

// Payment records one completed checkout in the `payments` table.  Rows are
// written exactly once by the settlement transaction, are never updated or
// deleted, and keep the class linkage plus the gateway order reference so a
// charge can always be reconciled against an enrollment.
type Payment struct {
	ID           uint64    `json:"id"`
	StudentEmail string    `json:"student_email"`
	ClassID      uint64    `json:"class_id"`
	ClassName    string    `json:"class_name"`
	AmountCents  uint32    `json:"amount_cents"`
	Currency     string    `json:"currency"`
	OrderID      string    `json:"order_id"`
	CreatedAt    time.Time `json:"created_at"`
}
