package usecase

import (
	"context"
	"fmt"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"

	"go.uber.org/zap"
)

// Archiver decides what happens to a booking once it reaches a terminal
// status. Archiving is best effort: the status change has already been
// stored when Archive runs.
type Archiver interface {
	Archive(ctx context.Context, booking *entity.Booking) error
}

type noopArchiver struct{}

// NewNoopArchiver keeps terminal bookings in the ledger. Their slots are
// free regardless, the active-status filter already ignores them.
func NewNoopArchiver() Archiver { return noopArchiver{} }

func (noopArchiver) Archive(ctx context.Context, booking *entity.Booking) error { return nil }

type historyArchiver struct {
	repo *repository.Repository
	log  *zap.Logger
}

// NewHistoryArchiver copies terminal bookings into client_history and
// removes them from the ledger.
func NewHistoryArchiver(repo *repository.Repository, log *zap.Logger) Archiver {
	return &historyArchiver{
		repo: repo,
		log:  log.With(zap.String("service", "archiver")),
	}
}

func (a *historyArchiver) Archive(ctx context.Context, booking *entity.Booking) error {
	record := &entity.ClientHistory{
		BookingID: booking.ID,
		Name:      booking.Name,
		Email:     booking.Email,
		Phone:     booking.Phone,
		Service:   booking.Service,
		Date:      booking.BookingDate,
		Time:      booking.BookingTime,
		Notes:     booking.Notes,
		Status:    string(booking.Status),
	}

	if err := a.repo.ClientHistory.Create(ctx, record); err != nil {
		return fmt.Errorf("archive booking %s: %w", booking.ID, err)
	}

	if err := a.repo.Booking.Delete(ctx, booking.ID); err != nil {
		// The history row exists, keep going; the ledger row is inert.
		return fmt.Errorf("remove archived booking %s: %w", booking.ID, err)
	}

	a.log.Info("Booking archived",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)
	return nil
}
