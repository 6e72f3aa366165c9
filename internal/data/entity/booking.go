package entity

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	Name        string        `db:"name"`
	Email       string        `db:"email"`
	Phone       string        `db:"phone"`
	Service     string        `db:"service"`
	BookingDate string        `db:"booking_date"` // YYYY-MM-DD
	BookingTime string        `db:"booking_time"` // slot label, e.g. "9:30 AM"
	Notes       *string       `db:"notes"`
	Status      BookingStatus `db:"status"`
}

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether the status machine allows moving to next:
// pending -> confirmed | completed | cancelled, confirmed -> completed | cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case BookingStatusConfirmed:
		return s == BookingStatusPending
	case BookingStatusCompleted, BookingStatusCancelled:
		return s == BookingStatusPending || s == BookingStatusConfirmed
	default:
		return false
	}
}
