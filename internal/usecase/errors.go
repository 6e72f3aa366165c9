package usecase

import (
	"errors"
	"fmt"
)

// Error taxonomy for the booking path. Handlers map these to HTTP status
// codes with errors.Is/As; everything else is an internal error.
var (
	// ErrValidation covers missing or malformed submission fields.
	ErrValidation = errors.New("validation failed")

	// ErrOutOfRange marks a date before today or past the booking horizon.
	ErrOutOfRange = errors.New("date is outside the booking window")

	// ErrConflict marks a (date, time) pair already held by an active booking.
	ErrConflict = errors.New("this time slot is already booked")

	// ErrDataUnavailable marks a storage failure. Callers must not read it
	// as "date unavailable" -- an empty slot list is an answer, this is not.
	ErrDataUnavailable = errors.New("booking data is temporarily unavailable")

	// ErrNotFound marks a missing record on admin paths.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks a status change the state machine forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized marks a failed login or a missing/expired session.
	ErrUnauthorized = errors.New("unauthorized")
)

// UnavailableError marks a date closed by an override, a recurring rule or
// the default policy. SpecialDayName carries the holiday label when the
// closure comes from a special-day override.
type UnavailableError struct {
	Date           string
	SpecialDayName string
}

func (e *UnavailableError) Error() string {
	if e.SpecialDayName != "" {
		return fmt.Sprintf("bookings are not available on %s (%s)", e.Date, e.SpecialDayName)
	}
	return fmt.Sprintf("bookings are not available on %s", e.Date)
}
