package usecase

import (
	"context"
	"errors"
	"testing"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"
	"barber-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	svc       *bookingService
	repo      *fakeBookingRepo
	overrides *fakeAvailabilityRepo
	sender    *recordingSender
	archiver  *recordingArchiver
}

func newBookingFixture(clock fakeClock) *bookingFixture {
	repo, availability, _, bookings := newFakeRepository()
	sender := &recordingSender{}
	archiver := &recordingArchiver{}
	svc := NewBookingService(repo, clock, sender, archiver, zap.NewNop()).(*bookingService)
	return &bookingFixture{
		svc:       svc,
		repo:      bookings,
		overrides: availability,
		sender:    sender,
		archiver:  archiver,
	}
}

func validSubmission() *request.SubmitBookingRequest {
	return &request.SubmitBookingRequest{
		Name:    "John Doe",
		Email:   "john@example.com",
		Phone:   "+2348012345678",
		Service: "Haircut",
		Date:    "2026-09-16",
		Time:    "10:00 AM",
	}
}

func TestSubmitBooking(t *testing.T) {
	f := newBookingFixture(midMonthClock)

	booking, err := f.svc.SubmitBooking(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Equal(t, "2026-09-16", booking.BookingDate)
	assert.Equal(t, "10:00 AM", booking.BookingTime)
	assert.NotEmpty(t, booking.ID)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "john@example.com", f.sender.sent[0].Email)
}

func TestSubmitBookingValidation(t *testing.T) {
	f := newBookingFixture(midMonthClock)

	tests := []struct {
		name   string
		mutate func(*request.SubmitBookingRequest)
	}{
		{"missing name", func(r *request.SubmitBookingRequest) { r.Name = "" }},
		{"bad email", func(r *request.SubmitBookingRequest) { r.Email = "not-an-email" }},
		{"missing phone", func(r *request.SubmitBookingRequest) { r.Phone = "" }},
		{"bad date format", func(r *request.SubmitBookingRequest) { r.Date = "16/09/2026" }},
		{"bad time label", func(r *request.SubmitBookingRequest) { r.Time = "26:00" }},
		{"time not on the grid", func(r *request.SubmitBookingRequest) { r.Time = "9:47 AM" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(req)

			_, err := f.svc.SubmitBooking(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, f.sender.sent)
}

func TestSubmitBookingUnknownService(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	f.svc.repo.Service.(*fakeServiceRepo).services = []*entity.Service{
		{ID: 1, Name: "Haircut"},
		{ID: 2, Name: "Beard Trim"},
	}

	req := validSubmission()
	req.Service = "Tattoo"
	_, err := f.svc.SubmitBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	// Known service passes the catalog check.
	req = validSubmission()
	req.Service = "Beard Trim"
	_, err = f.svc.SubmitBooking(context.Background(), req)
	assert.NoError(t, err)
}

func TestSubmitBookingOutOfRange(t *testing.T) {
	f := newBookingFixture(midMonthClock)

	for _, date := range []string{"2026-08-31", "2026-10-01", "2027-01-01"} {
		req := validSubmission()
		req.Date = date
		_, err := f.svc.SubmitBooking(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutOfRange, "date %s", date)
	}
}

func TestSubmitBookingClosedDay(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	f.overrides.overrides["2026-09-16"] = &entity.AvailabilityOverride{
		Date: "2026-09-16", StartTime: "09:00", EndTime: "17:00",
		Available: false, IsSpecialDay: true, SpecialDayName: strPtr("Founders Day"),
	}

	_, err := f.svc.SubmitBooking(context.Background(), validSubmission())

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "2026-09-16", unavailable.Date)
	assert.Equal(t, "Founders Day", unavailable.SpecialDayName)
}

func TestSubmitBookingConflictPrecheck(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	seedBooking(f.repo, "2026-09-16", "10:00 AM", entity.BookingStatusPending)

	_, err := f.svc.SubmitBooking(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, f.sender.sent)
}

func TestSubmitBookingConflictInsertRace(t *testing.T) {
	// The pre-check sees a free slot, then the insert loses the race and
	// must still come back as a conflict.
	f := newBookingFixture(midMonthClock)
	f.repo.createErr = repository.ErrDuplicateSlot

	_, err := f.svc.SubmitBooking(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubmitBookingCancelledSlotRebookable(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	seedBooking(f.repo, "2026-09-16", "10:00 AM", entity.BookingStatusCancelled)

	booking, err := f.svc.SubmitBooking(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "10:00 AM", booking.BookingTime)
}

func TestSubmitBookingNotificationFailureIsNotFatal(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	f.sender.failErr = errors.New("smtp down")

	booking, err := f.svc.SubmitBooking(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
}

func TestSubmitBookingStorageFailure(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	f.repo.err = errStorage

	_, err := f.svc.SubmitBooking(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestUpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.BookingStatus
		to      string
		wantErr error
	}{
		{"pending to confirmed", entity.BookingStatusPending, "confirmed", nil},
		{"pending to cancelled", entity.BookingStatusPending, "cancelled", nil},
		{"pending to completed", entity.BookingStatusPending, "completed", nil},
		{"confirmed to completed", entity.BookingStatusConfirmed, "completed", nil},
		{"confirmed to cancelled", entity.BookingStatusConfirmed, "cancelled", nil},
		{"confirmed back to pending", entity.BookingStatusConfirmed, "pending", ErrInvalidTransition},
		{"completed is frozen", entity.BookingStatusCompleted, "confirmed", ErrInvalidTransition},
		{"cancelled is frozen", entity.BookingStatusCancelled, "confirmed", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(midMonthClock)
			booking := seedBooking(f.repo, "2026-09-16", "10:00 AM", tt.from)

			updated, err := f.svc.UpdateBookingStatus(context.Background(), booking.ID,
				&request.UpdateBookingStatusRequest{Status: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatus(tt.to), updated.Status)
		})
	}
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	f := newBookingFixture(midMonthClock)

	_, err := f.svc.UpdateBookingStatus(context.Background(), uuid.New(),
		&request.UpdateBookingStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBookingStatusArchivesTerminal(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	booking := seedBooking(f.repo, "2026-09-16", "10:00 AM", entity.BookingStatusConfirmed)

	_, err := f.svc.UpdateBookingStatus(context.Background(), booking.ID,
		&request.UpdateBookingStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, f.archiver.archived, 1)
	assert.Equal(t, booking.ID, f.archiver.archived[0].ID)

	// Non-terminal transitions never archive.
	f = newBookingFixture(midMonthClock)
	booking = seedBooking(f.repo, "2026-09-16", "10:00 AM", entity.BookingStatusPending)
	_, err = f.svc.UpdateBookingStatus(context.Background(), booking.ID,
		&request.UpdateBookingStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Empty(t, f.archiver.archived)
}

func TestHistoryArchiver(t *testing.T) {
	repo, _, _, bookings := newFakeRepository()
	history := repo.ClientHistory.(*fakeHistoryRepo)
	archiver := NewHistoryArchiver(repo, zap.NewNop())

	booking := seedBooking(bookings, "2026-09-16", "10:00 AM", entity.BookingStatusCompleted)

	require.NoError(t, archiver.Archive(context.Background(), booking))

	require.Len(t, history.records, 1)
	record := history.records[0]
	assert.Equal(t, booking.ID, record.BookingID)
	assert.Equal(t, booking.Email, record.Email)
	assert.Equal(t, "completed", record.Status)

	// The ledger row is gone, so the slot shows free.
	remaining, err := bookings.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Nil(t, remaining)
}

func TestListBookingsByDate(t *testing.T) {
	f := newBookingFixture(midMonthClock)
	seedBooking(f.repo, "2026-09-16", "10:00 AM", entity.BookingStatusPending)
	seedBooking(f.repo, "2026-09-16", "11:00 AM", entity.BookingStatusConfirmed)
	seedBooking(f.repo, "2026-09-17", "10:00 AM", entity.BookingStatusPending)

	bookings, err := f.svc.ListBookingsByDate(context.Background(), "2026-09-16")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	_, err = f.svc.ListBookingsByDate(context.Background(), "bad-date")
	assert.ErrorIs(t, err, ErrValidation)
}
