package services

import (
	"errors"
	"fmt"
)

// Domain errors raised by the booking admission core. Controllers map these
// onto HTTP statuses; anything else is treated as an infrastructure error.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrTableUnavailable = errors.New("table is not available for booking")
)

// ConflictError means the requested slot overlaps an existing non-cancelled
// booking on the same table and date.
type ConflictError struct {
	TableNumber string
	BookingDate string
	BookingTime string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("table %s is already booked on %s at %s, choose another time or table",
		e.TableNumber, e.BookingDate, e.BookingTime)
}

// ValidationError means the input itself is malformed, e.g. a non-parseable
// date or a non-positive guest count.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
