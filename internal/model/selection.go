package model

import "time"

// Selection is a student's pending, unpaid intent to enroll in a class,
// stored in the `selections` table.  ClassName and PriceCents are snapshot
// fields taken at selection time so checkout does not depend on later edits
// to the class.  A selection is removed either explicitly by the student or
// by the settlement transaction once payment completes.
type Selection struct {
	ID           uint64    `json:"id"`
	StudentEmail string    `json:"student_email"`
	ClassID      uint64    `json:"class_id"`
	ClassName    string    `json:"class_name"`
	PriceCents   uint32    `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
}
