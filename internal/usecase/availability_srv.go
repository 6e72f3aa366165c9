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
	"barber-booking/internal/slots"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Default business hours used when neither an override nor a recurring
// rule exists for a date: Monday-Saturday 09:00-17:00, Sunday closed.
const (
	defaultOpenTime  = "09:00"
	defaultCloseTime = "17:00"
)

type AvailabilityService interface {
	// Public
	GetDaySlots(ctx context.Context, date string) (*response.DayAvailabilityResponse, error)

	// Admin: per-date overrides
	ListOverrides(ctx context.Context) ([]response.AvailabilityOverrideResponse, error)
	CreateOverride(ctx context.Context, req *request.AvailabilityOverrideRequest) (*response.AvailabilityOverrideResponse, error)
	UpdateOverride(ctx context.Context, id int64, req *request.AvailabilityOverrideRequest) (*response.AvailabilityOverrideResponse, error)
	DeleteOverride(ctx context.Context, id int64) error

	// Admin: weekly recurring rules
	ListRecurringRules(ctx context.Context) ([]response.RecurringRuleResponse, error)
	CreateRecurringRule(ctx context.Context, req *request.RecurringRuleRequest) (*response.RecurringRuleResponse, error)
	UpdateRecurringRule(ctx context.Context, id int64, req *request.RecurringRuleRequest) (*response.RecurringRuleResponse, error)
	DeleteRecurringRule(ctx context.Context, id int64) error
}

type availabilityService struct {
	repo  *repository.Repository
	clock slots.Clock
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, clock slots.Clock, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetDaySlots(ctx context.Context, date string) (*response.DayAvailabilityResponse, error) {
	metrics.IncSlotRequests()

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
	}

	if err := checkBookingWindow(s.clock, day); err != nil {
		return nil, err
	}

	window, err := resolveDayWindow(ctx, s.repo, day)
	if err != nil {
		return nil, err
	}

	resp := &response.DayAvailabilityResponse{
		Date:           date,
		SpecialDayName: window.SpecialDayName,
		Slots:          []slots.Slot{},
	}

	if !window.Open {
		resp.Closed = true
		return resp, nil
	}

	bookedTimes, err := s.repo.Booking.ListBookedTimes(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	generated, err := slots.Generate(day, window, booked, s.clock)
	if err != nil {
		s.log.Error("Failed to generate slots",
			zap.Error(err),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("generate slots for %s: %w", date, err)
	}
	if generated != nil {
		resp.Slots = generated
	}

	return resp, nil
}

// resolveDayWindow applies rule precedence for a date: a specific-date
// override wins, then the weekday's recurring rule, then the default
// business hours. Lookup failures surface as ErrDataUnavailable and are
// never treated as "no rule".
func resolveDayWindow(ctx context.Context, repo *repository.Repository, day time.Time) (slots.DayWindow, error) {
	date := day.Format(dateLayout)

	override, err := repo.Availability.FindByDate(ctx, date)
	if err != nil {
		return slots.DayWindow{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if override != nil {
		window := slots.DayWindow{
			Open:     override.Available,
			Start:    override.StartTime,
			End:      override.EndTime,
			Interval: override.SlotInterval,
		}
		if override.SpecialDayName != nil {
			window.SpecialDayName = *override.SpecialDayName
		}
		return window, nil
	}

	rule, err := repo.RecurringRule.FindByDayOfWeek(ctx, int(day.Weekday()))
	if err != nil {
		return slots.DayWindow{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if rule != nil {
		return slots.DayWindow{
			Open:     rule.Available,
			Start:    rule.StartTime,
			End:      rule.EndTime,
			Interval: slots.DefaultInterval,
		}, nil
	}

	if day.Weekday() == time.Sunday {
		return slots.DayWindow{Open: false}, nil
	}
	return slots.DayWindow{
		Open:     true,
		Start:    defaultOpenTime,
		End:      defaultCloseTime,
		Interval: slots.DefaultInterval,
	}, nil
}

// checkBookingWindow rejects dates before today and dates past the booking
// horizon: end of the current month, extended to end of next month during
// the final seven days of the month so month boundaries never leave a dead
// zone with nothing bookable.
func checkBookingWindow(clock slots.Clock, day time.Time) error {
	today := startOfDay(clock.Now())

	if day.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrOutOfRange, day.Format(dateLayout))
	}
	if day.After(bookingHorizon(today)) {
		return fmt.Errorf("%w: %s is beyond the booking horizon", ErrOutOfRange, day.Format(dateLayout))
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// bookingHorizon returns the last bookable date as of today.
func bookingHorizon(today time.Time) time.Time {
	endOfCurrentMonth := endOfMonth(today)
	if today.After(endOfCurrentMonth.AddDate(0, 0, -7)) {
		nextMonth := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return endOfMonth(nextMonth)
	}
	return endOfCurrentMonth
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.AddDate(0, 0, -1)
}

// ==================== ADMIN: OVERRIDES ====================

func (s *availabilityService) ListOverrides(ctx context.Context) ([]response.AvailabilityOverrideResponse, error) {
	overrides, err := s.repo.Availability.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	result := make([]response.AvailabilityOverrideResponse, len(overrides))
	for i, o := range overrides {
		result[i] = response.OverrideToResponse(o)
	}
	return result, nil
}

func (s *availabilityService) CreateOverride(ctx context.Context, req *request.AvailabilityOverrideRequest) (*response.AvailabilityOverrideResponse, error) {
	override, err := s.overrideFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Availability.FindByDate(ctx, override.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: an override for %s already exists", ErrValidation, override.Date)
	}

	if err := s.repo.Availability.Create(ctx, override); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	s.log.Info("Availability override created",
		zap.String("date", override.Date),
		zap.Bool("available", override.Available),
	)

	resp := response.OverrideToResponse(override)
	return &resp, nil
}

func (s *availabilityService) UpdateOverride(ctx context.Context, id int64, req *request.AvailabilityOverrideRequest) (*response.AvailabilityOverrideResponse, error) {
	override, err := s.overrideFromRequest(req)
	if err != nil {
		return nil, err
	}
	override.ID = id

	if err := s.repo.Availability.Update(ctx, override); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: override %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("update override %d: %w", id, err)
	}

	s.log.Info("Availability override updated", zap.Int64("id", id), zap.String("date", override.Date))

	resp := response.OverrideToResponse(override)
	return &resp, nil
}

func (s *availabilityService) DeleteOverride(ctx context.Context, id int64) error {
	if err := s.repo.Availability.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: override %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete override %d: %w", id, err)
	}

	s.log.Info("Availability override deleted", zap.Int64("id", id))
	return nil
}

func (s *availabilityService) overrideFromRequest(req *request.AvailabilityOverrideRequest) (*entity.AvailabilityOverride, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if req.StartTime >= req.EndTime {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	interval := req.SlotInterval
	if interval <= 0 {
		interval = slots.DefaultInterval
	}

	return &entity.AvailabilityOverride{
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Available:      *req.Available,
		SlotInterval:   interval,
		IsSpecialDay:   req.IsSpecialDay,
		SpecialDayName: req.SpecialDayName,
	}, nil
}

// ==================== ADMIN: RECURRING RULES ====================

func (s *availabilityService) ListRecurringRules(ctx context.Context) ([]response.RecurringRuleResponse, error) {
	rules, err := s.repo.RecurringRule.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	result := make([]response.RecurringRuleResponse, len(rules))
	for i, rule := range rules {
		result[i] = response.RecurringRuleToResponse(rule)
	}
	return result, nil
}

func (s *availabilityService) CreateRecurringRule(ctx context.Context, req *request.RecurringRuleRequest) (*response.RecurringRuleResponse, error) {
	rule, err := s.ruleFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.RecurringRule.FindByDayOfWeek(ctx, rule.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a rule for weekday %d already exists", ErrValidation, rule.DayOfWeek)
	}

	if err := s.repo.RecurringRule.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	s.log.Info("Recurring rule created",
		zap.Int("day_of_week", rule.DayOfWeek),
		zap.Bool("available", rule.Available),
	)

	resp := response.RecurringRuleToResponse(rule)
	return &resp, nil
}

func (s *availabilityService) UpdateRecurringRule(ctx context.Context, id int64, req *request.RecurringRuleRequest) (*response.RecurringRuleResponse, error) {
	rule, err := s.ruleFromRequest(req)
	if err != nil {
		return nil, err
	}
	rule.ID = id

	if err := s.repo.RecurringRule.Update(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: recurring rule %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("update recurring rule %d: %w", id, err)
	}

	s.log.Info("Recurring rule updated", zap.Int64("id", id), zap.Int("day_of_week", rule.DayOfWeek))

	resp := response.RecurringRuleToResponse(rule)
	return &resp, nil
}

func (s *availabilityService) DeleteRecurringRule(ctx context.Context, id int64) error {
	if err := s.repo.RecurringRule.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: recurring rule %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete recurring rule %d: %w", id, err)
	}

	s.log.Info("Recurring rule deleted", zap.Int64("id", id))
	return nil
}

func (s *availabilityService) ruleFromRequest(req *request.RecurringRuleRequest) (*entity.RecurringRule, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if req.StartTime >= req.EndTime {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	return &entity.RecurringRule{
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Available: *req.Available,
	}, nil
}
