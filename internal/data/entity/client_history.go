package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClientHistory is an archived copy of a completed or cancelled booking,
// kept out of the active ledger so its slot can be rebooked.
type ClientHistory struct {
	ID        int64     `db:"id"`
	BookingID uuid.UUID `db:"booking_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Service   string    `db:"service"`
	Date      string    `db:"date"`
	Time      string    `db:"time"`
	Notes     *string   `db:"notes"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
