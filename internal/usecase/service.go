package usecase

import (
	"barber-booking/internal/data/repository"
	"barber-booking/internal/notify"
	"barber-booking/internal/slots"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Availability AvailabilityService
	Booking      BookingService
	Catalog      CatalogService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	clock := slots.SystemClock()

	var sender notify.Sender
	if config.Email.Host != "" {
		sender = notify.NewSMTPSender(config.Email, log)
	} else {
		sender = notify.NewNopSender(log)
	}

	var archiver Archiver
	if config.Booking.ArchiveTerminal {
		archiver = NewHistoryArchiver(repo, log)
	} else {
		archiver = NewNoopArchiver()
	}

	return &Service{
		Auth:         NewAuthService(repo, clock, config.Booking.SessionHours, log),
		Availability: NewAvailabilityService(repo, clock, log),
		Booking:      NewBookingService(repo, clock, sender, archiver, log),
		Catalog:      NewCatalogService(repo, log),
	}
}
