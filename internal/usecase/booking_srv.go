package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"
	"barber-booking/internal/dto/response"
	"barber-booking/internal/metrics"
	"barber-booking/internal/notify"
	"barber-booking/internal/slots"
	"barber-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public
	SubmitBooking(ctx context.Context, req *request.SubmitBookingRequest) (*response.BookingResponse, error)

	// Admin
	ListBookings(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListBookingsByDate(ctx context.Context, date string) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	ListClientHistory(ctx context.Context, email string) ([]response.ClientHistoryResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	clock    slots.Clock
	sender   notify.Sender
	archiver Archiver
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, clock slots.Clock, sender notify.Sender, archiver Archiver, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		clock:    clock,
		sender:   sender,
		archiver: archiver,
		log:      log.With(zap.String("service", "booking")),
	}
}

// SubmitBooking validates a submission, re-resolves the day's window, checks
// the slot is open and free, and inserts the booking. The insert hits the
// partial unique index on (booking_date, booking_time), so two concurrent
// submissions for the same slot cannot both land: the pre-check is a cheap
// early answer, the insert is the decision.
func (s *bookingService) SubmitBooking(ctx context.Context, req *request.SubmitBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
	}
	if _, err := slots.ParseLabel(day, req.Time); err != nil {
		return nil, fmt.Errorf("%w: time must be a slot label such as \"9:30 AM\"", ErrValidation)
	}

	if err := s.validateService(ctx, req.Service); err != nil {
		return nil, err
	}

	if err := checkBookingWindow(s.clock, day); err != nil {
		return nil, err
	}

	window, err := resolveDayWindow(ctx, s.repo, day)
	if err != nil {
		return nil, err
	}
	if !window.Open {
		return nil, &UnavailableError{Date: req.Date, SpecialDayName: window.SpecialDayName}
	}
	if err := s.checkSlotOffered(day, window, req.Time); err != nil {
		return nil, err
	}

	taken, err := s.repo.Booking.HasConflict(ctx, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if taken {
		metrics.IncBookingConflict("precheck")
		return nil, fmt.Errorf("%w: %s at %s", ErrConflict, req.Date, req.Time)
	}

	now := s.clock.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Service:     req.Service,
		BookingDate: req.Date,
		BookingTime: req.Time,
		Notes:       req.Notes,
		Status:      entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			metrics.IncBookingConflict("insert")
			return nil, fmt.Errorf("%w: %s at %s", ErrConflict, req.Date, req.Time)
		}
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	metrics.IncBookingsCreated()
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("date", booking.BookingDate),
		zap.String("time", booking.BookingTime),
		zap.String("service", booking.Service),
	)

	// Best effort: a lost email never rolls back a stored booking.
	if err := s.sender.SendBookingConfirmation(ctx, booking); err != nil {
		metrics.IncNotificationFailed()
		s.log.Error("Failed to send booking confirmation",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// validateService rejects service names not in the catalog. An empty catalog
// disables the check so a fresh install can take bookings before seeding.
func (s *bookingService) validateService(ctx context.Context, name string) error {
	services, err := s.repo.Service.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(services) == 0 {
		return nil
	}
	for _, svc := range services {
		if svc.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown service %q", ErrValidation, name)
}

// checkSlotOffered verifies the requested label is one the day's window
// actually generates, so nobody books 9:47 PM by hand-crafting a request.
func (s *bookingService) checkSlotOffered(day time.Time, window slots.DayWindow, label string) error {
	offered, err := slots.Generate(day, window, nil, s.clock)
	if err != nil {
		return fmt.Errorf("generate slots for %s: %w", day.Format(dateLayout), err)
	}
	for _, slot := range offered {
		if slot.Time == label {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not an offered time on %s", ErrValidation, label, day.Format(dateLayout))
}

func (s *bookingService) ListBookings(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	result := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = response.BookingToResponse(b)
	}
	return response.NewPaginatedResponse(result, page.Page, page.Limit(), total), nil
}

func (s *bookingService) ListBookingsByDate(ctx context.Context, date string) ([]response.BookingResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
	}

	bookings, err := s.repo.Booking.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	result := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = response.BookingToResponse(b)
	}
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, id uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}

	next := entity.BookingStatus(req.Status)
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	metrics.IncStatusTransition(string(next))
	s.log.Info("Booking status updated",
		zap.String("booking_id", id.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(next)),
	)

	booking.Status = next
	booking.UpdatedAt = s.clock.Now()

	if next.IsTerminal() {
		if err := s.archiver.Archive(ctx, booking); err != nil {
			s.log.Error("Failed to archive terminal booking",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
		}
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListClientHistory(ctx context.Context, email string) ([]response.ClientHistoryResponse, error) {
	records, err := s.repo.ClientHistory.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	result := make([]response.ClientHistoryResponse, len(records))
	for i, rec := range records {
		result[i] = response.ClientHistoryToResponse(rec)
	}
	return result, nil
}
