package repository

import (
	"errors"

	"barber-booking/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by updates and deletes that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Availability  AvailabilityRepository
	RecurringRule RecurringRuleRepository
	Booking       BookingRepository
	ClientHistory ClientHistoryRepository
	Service       ServiceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Availability:  NewAvailabilityRepository(db, log),
		RecurringRule: NewRecurringRuleRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		ClientHistory: NewClientHistoryRepository(db, log),
		Service:       NewServiceRepository(db, log),
	}
}
