package create_offer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	lessonClient "github.com/m04kA/SMC-TutoringService/internal/integrations/lessonservice"
)

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time {
	return p.now
}

type fakePatternRepo struct {
	patterns []*domain.WeeklyAvailabilityPattern
}

func (r *fakePatternRepo) GetAllByTutor(ctx context.Context, tutorID int64) ([]*domain.WeeklyAvailabilityPattern, error) {
	return r.patterns, nil
}

type fakeBookingRepo struct {
	booked []*domain.BookedSlot
}

func (r *fakeBookingRepo) GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to time.Time) ([]*domain.BookedSlot, error) {
	return r.booked, nil
}

type fakeOfferRepo struct {
	offered []domain.OfferedSlot
	created *domain.Offer
}

func (r *fakeOfferRepo) Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	created := *offer
	created.ID = 10
	created.CreatedAt = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	r.created = &created
	return &created, nil
}

func (r *fakeOfferRepo) GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]domain.OfferedSlot, error) {
	return r.offered, nil
}

type fakeRescheduleRepo struct {
	pendingTargets []*domain.RescheduleRequest
}

func (r *fakeRescheduleRepo) GetPendingTargetsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]*domain.RescheduleRequest, error) {
	return r.pendingTargets, nil
}

type fakeLessonClient struct {
	lesson *lessonClient.Lesson
	err    error
}

func (c *fakeLessonClient) GetLesson(ctx context.Context, lessonID int64) (*lessonClient.Lesson, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.lesson, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullWeekPattern(indexes ...domain.SlotIndex) *domain.WeeklyAvailabilityPattern {
	days := make(map[time.Weekday][]domain.SlotIndex)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = indexes
	}
	return &domain.WeeklyAvailabilityPattern{
		ID:          1,
		TutorID:     7,
		AppliedFrom: date(2025, 1, 1),
		Days:        days,
	}
}

type fixture struct {
	uc       *UseCase
	offers   *fakeOfferRepo
	bookings *fakeBookingRepo
	lessons  *fakeLessonClient
}

func newFixture(now time.Time) *fixture {
	offers := &fakeOfferRepo{}
	bookings := &fakeBookingRepo{}
	lessons := &fakeLessonClient{
		lesson: &lessonClient.Lesson{
			ID:              2,
			TutorID:         7,
			Name:            "Алгебра",
			PricePerSlot:    500,
			DurationMinutes: 30,
			IsActive:        true,
		},
	}

	uc := NewUseCase(
		&fakePatternRepo{patterns: []*domain.WeeklyAvailabilityPattern{fullWeekPattern(20, 22)}},
		bookings,
		offers,
		&fakeRescheduleRepo{},
		lessons,
		&fakeTxManager{},
		&nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, offers: offers, bookings: bookings, lessons: lessons}
}

// Неделя с понедельника 13.10: отображаемый индекс 34 - хранимый 20,
// отображаемый 36 - хранимый 22
var weekStart = date(2025, 10, 13)

func validRequest() *Request {
	return &Request{
		TutorID:   7,
		LearnerID: 3,
		LessonID:  2,
		Selections: []SlotSelection{
			{WeekStart: weekStart, DayInWeek: 2, SlotIndex: 34},
			{WeekStart: weekStart, DayInWeek: 3, SlotIndex: 36},
		},
	}
}

func TestExecute_CreatesOffer(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "Алгебра", resp.LessonName)
	assert.Equal(t, float64(500), resp.PricePerSlot)
	assert.Equal(t, float64(1000), resp.TotalPrice)
	assert.Equal(t, domain.OfferExpiry(now), resp.ExpiresAt)
	require.Len(t, resp.Slots, 2)

	require.NotNil(t, f.offers.created)
	assert.Equal(t, int64(7), f.offers.created.TutorID)
	assert.Equal(t, int64(3), f.offers.created.LearnerID)

	starts := []time.Time{f.offers.created.Slots[0].SlotDateTime, f.offers.created.Slots[1].SlotDateTime}
	assert.Contains(t, starts, domain.SlotStartUTC(date(2025, 10, 15), 20))
	assert.Contains(t, starts, domain.SlotStartUTC(date(2025, 10, 16), 22))
}

func TestExecute_MidnightWrapSelection(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	// Отображаемый индекс 2 (01:00 UTC+7) - хранимый 36 предыдущих суток
	f.uc.patternRepo = &fakePatternRepo{patterns: []*domain.WeeklyAvailabilityPattern{fullWeekPattern(36)}}

	req := validRequest()
	req.Selections = []SlotSelection{{WeekStart: weekStart, DayInWeek: 2, SlotIndex: 2}}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.SlotStartUTC(date(2025, 10, 14), 36), resp.Slots[0].SlotDateTime)
}

func TestExecute_BookedCellRejected(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.bookings.booked = []*domain.BookedSlot{
		{ID: 101, BookedDate: date(2025, 10, 15), SlotIndex: 20, Status: domain.SlotStatusPending},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, f.offers.created)
}

func TestExecute_HeldCellRejected(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.offers.offered = []domain.OfferedSlot{
		{ID: 1, OfferID: 11, SlotDateTime: domain.SlotStartUTC(date(2025, 10, 15), 20), SlotIndex: 20},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_PastCellRejected(t *testing.T) {
	// Сетка строится на 15.10, а сейчас уже 16.10
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest()
	req.Selections = req.Selections[:1]

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_LessonNotOwned(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.lessons.lesson.TutorID = 8

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLessonNotOwned)
}

func TestExecute_LessonInactive(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.lessons.lesson.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLessonInactive)
}

func TestExecute_LessonNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.lessons.err = lessonClient.ErrLessonNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestExecute_LessonServiceUnavailable(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.lessons.err = lessonClient.ErrServiceUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLessonServiceUnavailable)
}

func TestExecute_EmptySelection(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest()
	req.Selections = nil

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoSlotsSelected)
}
