package model

import "time"

// Class lifecycle statuses.  An offering is submitted as PENDING and moves
// to APPROVED or REJECTED only through the admin moderation endpoint.
const (
	ClassPending  = "pending"
	ClassApproved = "approved"
	ClassRejected = "rejected"
)

// Class represents a photography class offering as stored in the `classes`
// table.
//
// Fields:
//
//	ID              – primary key identifier.
//	Name            – class title shown to students.
//	Image           – cover image URL.
//	InstructorName  – display name of the submitting instructor.
//	InstructorEmail – email of the submitting instructor (from their token).
//	AvailableSeats  – seats still open; never negative.
//	EnrolledCount   – seats taken by settled enrollments.
//	PriceCents      – enrollment price in minor currency units.
//	Status          – pending | approved | rejected.
//	Feedback        – optional admin note left on approval/rejection.
//
// AvailableSeats and EnrolledCount are mutated only by the settlement
// transaction; their sum is conserved across enrollments.
type Class struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Image           string    `json:"image,omitempty"`
	InstructorName  string    `json:"instructor_name"`
	InstructorEmail string    `json:"instructor_email"`
	AvailableSeats  uint32    `json:"available_seats"`
	EnrolledCount   uint32    `json:"enrolled_count"`
	PriceCents      uint32    `json:"price_cents"`
	Status          string    `json:"status"`
	Feedback        *string   `json:"feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidClassStatus reports whether status is a recognized lifecycle value.
func ValidClassStatus(status string) bool {
	switch status {
	case ClassPending, ClassApproved, ClassRejected:
		return true
	}
	return false
}
