package domain

import "errors"

// Rental errors. Every precondition failure in the rental workflows
// maps to one of these; callers only distinguish the failure class.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBookNotFound         = errors.New("book not found")
	ErrBookNotAvailable     = errors.New("no copies available to reserve")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationNotActive = errors.New("reservation already returned")
)
