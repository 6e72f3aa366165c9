package usecase

import (
	"context"
	"testing"
	"time"

	"barber-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

// midMonthClock sits well inside September 2026, so the horizon is the end
// of that month and no test date collides with "today".
var midMonthClock = fakeClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}

func newAvailabilityServiceForTest(clock fakeClock) (*availabilityService, *fakeAvailabilityRepo, *fakeRecurringRepo, *fakeBookingRepo) {
	repo, availability, recurring, bookings := newFakeRepository()
	svc := NewAvailabilityService(repo, clock, zap.NewNop()).(*availabilityService)
	return svc, availability, recurring, bookings
}

func TestGetDaySlotsDefaultHours(t *testing.T) {
	svc, _, _, _ := newAvailabilityServiceForTest(midMonthClock)

	// 2026-09-16 is a Wednesday.
	day, err := svc.GetDaySlots(context.Background(), "2026-09-16")
	require.NoError(t, err)

	assert.False(t, day.Closed)
	require.Len(t, day.Slots, 16)
	assert.Equal(t, "9:00 AM", day.Slots[0].Time)
	assert.Equal(t, "4:30 PM", day.Slots[15].Time)
}

func TestGetDaySlotsDefaultSundayClosed(t *testing.T) {
	svc, _, _, _ := newAvailabilityServiceForTest(midMonthClock)

	// 2026-09-20 is a Sunday.
	day, err := svc.GetDaySlots(context.Background(), "2026-09-20")
	require.NoError(t, err)

	assert.True(t, day.Closed)
	assert.Empty(t, day.Slots)
	assert.Empty(t, day.SpecialDayName)
}

func TestGetDaySlotsOverrideBeatsRecurring(t *testing.T) {
	svc, availability, recurring, _ := newAvailabilityServiceForTest(midMonthClock)

	// Wednesday rule says afternoons; the override narrows the day to two hours.
	recurring.rules[3] = &entity.RecurringRule{DayOfWeek: 3, StartTime: "13:00", EndTime: "17:00", Available: true}
	availability.overrides["2026-09-16"] = &entity.AvailabilityOverride{
		Date: "2026-09-16", StartTime: "09:00", EndTime: "11:00", Available: true, SlotInterval: 30,
	}

	day, err := svc.GetDaySlots(context.Background(), "2026-09-16")
	require.NoError(t, err)

	require.Len(t, day.Slots, 4)
	assert.Equal(t, "9:00 AM", day.Slots[0].Time)
	assert.Equal(t, "10:30 AM", day.Slots[3].Time)
}

func TestGetDaySlotsRecurringBeatsDefault(t *testing.T) {
	svc, _, recurring, _ := newAvailabilityServiceForTest(midMonthClock)

	// Sunday is closed by default; a recurring rule opens it.
	recurring.rules[0] = &entity.RecurringRule{DayOfWeek: 0, StartTime: "10:00", EndTime: "12:00", Available: true}

	day, err := svc.GetDaySlots(context.Background(), "2026-09-20")
	require.NoError(t, err)

	assert.False(t, day.Closed)
	require.Len(t, day.Slots, 4)
	assert.Equal(t, "10:00 AM", day.Slots[0].Time)
}

func TestGetDaySlotsSpecialDayClosure(t *testing.T) {
	clock := fakeClock{now: time.Date(2026, 12, 1, 8, 0, 0, 0, time.UTC)}
	svc, availability, _, _ := newAvailabilityServiceForTest(clock)

	availability.overrides["2026-12-25"] = &entity.AvailabilityOverride{
		Date: "2026-12-25", StartTime: "09:00", EndTime: "17:00",
		Available: false, IsSpecialDay: true, SpecialDayName: strPtr("Christmas"),
	}

	day, err := svc.GetDaySlots(context.Background(), "2026-12-25")
	require.NoError(t, err)

	assert.True(t, day.Closed)
	assert.Empty(t, day.Slots)
	assert.Equal(t, "Christmas", day.SpecialDayName)
}

func TestGetDaySlotsSubtractsBooked(t *testing.T) {
	svc, availability, _, bookings := newAvailabilityServiceForTest(midMonthClock)

	availability.overrides["2026-09-16"] = &entity.AvailabilityOverride{
		Date: "2026-09-16", StartTime: "09:00", EndTime: "11:00", Available: true, SlotInterval: 30,
	}
	seedBooking(bookings, "2026-09-16", "9:30 AM", entity.BookingStatusConfirmed)
	seedBooking(bookings, "2026-09-16", "10:00 AM", entity.BookingStatusCancelled)

	day, err := svc.GetDaySlots(context.Background(), "2026-09-16")
	require.NoError(t, err)

	// The confirmed slot is gone; the cancelled one is bookable again.
	times := make([]string, len(day.Slots))
	for i, slot := range day.Slots {
		times[i] = slot.Time
	}
	assert.Equal(t, []string{"9:00 AM", "10:00 AM", "10:30 AM"}, times)
}

func TestGetDaySlotsDateValidation(t *testing.T) {
	svc, _, _, _ := newAvailabilityServiceForTest(midMonthClock)

	for _, date := range []string{"16-09-2026", "2026/09/16", "not-a-date", "2026-13-40"} {
		_, err := svc.GetDaySlots(context.Background(), date)
		assert.ErrorIs(t, err, ErrValidation, "date %q", date)
	}
}

func TestGetDaySlotsOutOfRange(t *testing.T) {
	svc, availability, _, _ := newAvailabilityServiceForTest(midMonthClock)

	// Even an open override cannot pull a past date into range.
	availability.overrides["2026-08-20"] = &entity.AvailabilityOverride{
		Date: "2026-08-20", StartTime: "09:00", EndTime: "17:00", Available: true,
	}

	_, err := svc.GetDaySlots(context.Background(), "2026-08-20")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = svc.GetDaySlots(context.Background(), "2026-10-01")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGetDaySlotsStorageFailure(t *testing.T) {
	svc, availability, _, _ := newAvailabilityServiceForTest(midMonthClock)
	availability.err = errStorage

	_, err := svc.GetDaySlots(context.Background(), "2026-09-16")
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestBookingHorizon(t *testing.T) {
	tests := []struct {
		name  string
		today string
		want  string
	}{
		{"mid month ends at month end", "2026-09-10", "2026-09-30"},
		{"last in-month day before roll", "2026-09-23", "2026-09-30"},
		{"final week rolls to next month", "2026-09-24", "2026-10-31"},
		{"last day of month rolls", "2026-09-30", "2026-10-31"},
		{"december rolls into january", "2026-12-28", "2027-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today, err := time.Parse("2006-01-02", tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bookingHorizon(today).Format("2006-01-02"))
		})
	}
}
