package usecase

import (
	"context"
	"errors"
	"time"

	"barber-booking/internal/data/entity"
	"barber-booking/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces. Each fake carries an
// optional err that, when set, is returned by every call, to exercise the
// ErrDataUnavailable paths.

var errStorage = errors.New("storage down")

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeAvailabilityRepo struct {
	overrides map[string]*entity.AvailabilityOverride
	err       error
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{overrides: make(map[string]*entity.AvailabilityOverride)}
}

func (f *fakeAvailabilityRepo) FindByDate(ctx context.Context, date string) (*entity.AvailabilityOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overrides[date], nil
}

func (f *fakeAvailabilityRepo) FindAll(ctx context.Context) ([]*entity.AvailabilityOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.AvailabilityOverride
	for _, o := range f.overrides {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Create(ctx context.Context, override *entity.AvailabilityOverride) error {
	if f.err != nil {
		return f.err
	}
	override.ID = int64(len(f.overrides) + 1)
	f.overrides[override.Date] = override
	return nil
}

func (f *fakeAvailabilityRepo) Update(ctx context.Context, override *entity.AvailabilityOverride) error {
	if f.err != nil {
		return f.err
	}
	f.overrides[override.Date] = override
	return nil
}

func (f *fakeAvailabilityRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for date, o := range f.overrides {
		if o.ID == id {
			delete(f.overrides, date)
			return nil
		}
	}
	return nil
}

type fakeRecurringRepo struct {
	rules map[int]*entity.RecurringRule
	err   error
}

func newFakeRecurringRepo() *fakeRecurringRepo {
	return &fakeRecurringRepo{rules: make(map[int]*entity.RecurringRule)}
}

func (f *fakeRecurringRepo) FindByDayOfWeek(ctx context.Context, dayOfWeek int) (*entity.RecurringRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules[dayOfWeek], nil
}

func (f *fakeRecurringRepo) FindAll(ctx context.Context) ([]*entity.RecurringRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.RecurringRule
	for _, r := range f.rules {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecurringRepo) Create(ctx context.Context, rule *entity.RecurringRule) error {
	if f.err != nil {
		return f.err
	}
	rule.ID = int64(len(f.rules) + 1)
	f.rules[rule.DayOfWeek] = rule
	return nil
}

func (f *fakeRecurringRepo) Update(ctx context.Context, rule *entity.RecurringRule) error {
	if f.err != nil {
		return f.err
	}
	f.rules[rule.DayOfWeek] = rule
	return nil
}

func (f *fakeRecurringRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for dow, r := range f.rules {
		if r.ID == id {
			delete(f.rules, dow)
			return nil
		}
	}
	return nil
}

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*entity.Booking
	createErr error
	err       error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) activeHolds(date, timeLabel string) bool {
	for _, b := range f.bookings {
		if b.BookingDate == date && b.BookingTime == timeLabel && !b.Status.IsTerminal() {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if f.err != nil {
		return f.err
	}
	if f.createErr != nil {
		return f.createErr
	}
	if f.activeHolds(booking.BookingDate, booking.BookingTime) {
		return repository.ErrDuplicateSlot
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) FindByDate(ctx context.Context, date string) ([]*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.BookingDate == date {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	if f.err != nil {
		return f.err
	}
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, b := range f.bookings {
		if b.BookingDate == date && !b.Status.IsTerminal() {
			out = append(out, b.BookingTime)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) HasConflict(ctx context.Context, date, timeLabel string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.activeHolds(date, timeLabel), nil
}

type fakeHistoryRepo struct {
	records []*entity.ClientHistory
	err     error
}

func (f *fakeHistoryRepo) Create(ctx context.Context, record *entity.ClientHistory) error {
	if f.err != nil {
		return f.err
	}
	record.ID = int64(len(f.records) + 1)
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryRepo) FindByEmail(ctx context.Context, email string) ([]*entity.ClientHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.ClientHistory
	for _, rec := range f.records {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	services []*entity.Service
	err      error
}

func (f *fakeServiceRepo) FindAll(ctx context.Context) ([]*entity.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func (f *fakeServiceRepo) FindByName(ctx context.Context, name string) (*entity.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	if f.err != nil {
		return f.err
	}
	service.ID = int64(len(f.services) + 1)
	f.services = append(f.services, service)
	return nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	if f.err != nil {
		return f.err
	}
	for i, s := range f.services {
		if s.ID == service.ID {
			f.services[i] = service
		}
	}
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for i, s := range f.services {
		if s.ID == id {
			f.services = append(f.services[:i], f.services[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
	err   error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	err      error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if f.err != nil {
		return f.err
	}
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	if f.err != nil {
		return f.err
	}
	if s, ok := f.sessions[token]; ok {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	now := time.Now()
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.RevokedAt = &now
		}
	}
	return nil
}

// recordingSender captures confirmation sends; failErr makes every send fail.
type recordingSender struct {
	sent    []*entity.Booking
	failErr error
}

func (s *recordingSender) SendBookingConfirmation(ctx context.Context, booking *entity.Booking) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.sent = append(s.sent, booking)
	return nil
}

type recordingArchiver struct {
	archived []*entity.Booking
}

func (a *recordingArchiver) Archive(ctx context.Context, booking *entity.Booking) error {
	a.archived = append(a.archived, booking)
	return nil
}

func newFakeRepository() (*repository.Repository, *fakeAvailabilityRepo, *fakeRecurringRepo, *fakeBookingRepo) {
	availability := newFakeAvailabilityRepo()
	recurring := newFakeRecurringRepo()
	bookings := newFakeBookingRepo()

	repo := &repository.Repository{
		User:          &fakeUserRepo{users: make(map[string]*entity.User)},
		Session:       newFakeSessionRepo(),
		Availability:  availability,
		RecurringRule: recurring,
		Booking:       bookings,
		ClientHistory: &fakeHistoryRepo{},
		Service:       &fakeServiceRepo{},
	}
	return repo, availability, recurring, bookings
}

func seedBooking(repo *fakeBookingRepo, date, timeLabel string, status entity.BookingStatus) *entity.Booking {
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		Name:        "Seeded Client",
		Email:       "seed@example.com",
		Phone:       "+111111111",
		Service:     "Haircut",
		BookingDate: date,
		BookingTime: timeLabel,
		Status:      status,
	}
	repo.bookings[booking.ID] = booking
	return booking
}
