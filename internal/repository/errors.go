// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow handlers to distinguish
// failure scenarios and map them onto stable HTTP status codes without
// leaking query details to the client.
package repository

import "errors"

// ErrUserExists is returned when registration targets an email that is
// already present.  Registration is idempotent: the caller receives the
// "already exists" signal and the store is left unchanged.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when no user record matches the given
// email or id.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidRole is returned when a role mutation carries a value outside
// {student, instructor, admin}.
var ErrInvalidRole = errors.New("invalid role")

// ErrClassNotFound is returned when a class id does not exist.
var ErrClassNotFound = errors.New("class not found")

// ErrInvalidStatus is returned when a status mutation carries a value
// outside {pending, approved, rejected}.
var ErrInvalidStatus = errors.New("invalid class status")

// ErrSeatExhausted is returned by the seat guard when a class has no open
// seats left.  Handlers translate this into HTTP 409.
var ErrSeatExhausted = errors.New("no seats available")

// ErrSelectionNotFound is returned when a selection id does not exist (or
// belongs to another student).
var ErrSelectionNotFound = errors.New("selection not found")

// ErrAlreadySelected is returned when a student selects the same class a
// second time while the first selection is still pending.
var ErrAlreadySelected = errors.New("class already selected")
