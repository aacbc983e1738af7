package get_schedule_window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekPattern(id int64, appliedFrom time.Time, indexes ...domain.SlotIndex) *domain.WeeklyAvailabilityPattern {
	days := make(map[time.Weekday][]domain.SlotIndex)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = indexes
	}
	return &domain.WeeklyAvailabilityPattern{
		ID:          id,
		TutorID:     7,
		AppliedFrom: appliedFrom,
		Days:        days,
	}
}

type fixture struct {
	uc          *UseCase
	patterns    *fakePatternRepo
	bookings    *fakeBookingRepo
	offers      *fakeOfferRepo
	reschedules *fakeRescheduleRepo
}

func newFixture(now time.Time) *fixture {
	patterns := &fakePatternRepo{
		patterns: []*domain.WeeklyAvailabilityPattern{
			weekPattern(1, date(2025, 1, 1), 20, 22, 24),
		},
	}
	bookings := &fakeBookingRepo{}
	offers := &fakeOfferRepo{}
	reschedules := &fakeRescheduleRepo{}

	uc := NewUseCase(patterns, bookings, offers, reschedules, &nopLogger{})
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, patterns: patterns, bookings: bookings, offers: offers, reschedules: reschedules}
}

func slotByIndex(day DayResponse, index int) *SlotCellResponse {
	for i := range day.Slots {
		if day.Slots[i].SlotIndex == index {
			return &day.Slots[i]
		}
	}
	return nil
}

func TestExecute_MergesThreeOccupancySources(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
	offerID := int64(10)
	f.bookings.booked = []*domain.BookedSlot{
		{ID: 101, BookedDate: date(2025, 10, 15), SlotIndex: 20, Status: domain.SlotStatusPending},
	}
	f.offers.offered = []domain.OfferedSlot{
		{ID: 1, OfferID: offerID, SlotDateTime: domain.SlotStartUTC(date(2025, 10, 15), 22), SlotIndex: 22},
	}
	f.reschedules.pendingTargets = []*domain.RescheduleRequest{
		{ID: 40, NewSlotDateTime: domain.SlotStartUTC(date(2025, 10, 15), 24), NewSlotIndex: 24},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		TutorID:   7,
		StartDate: date(2025, 10, 15),
		EndDate:   date(2025, 10, 16),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.TutorID)
	require.Len(t, resp.Days, 2)

	day := resp.Days[0]
	assert.Equal(t, "2025-10-15", day.Date)
	require.Len(t, day.Slots, 3)

	booked := slotByIndex(day, 20)
	require.NotNil(t, booked)
	assert.Equal(t, OccupancyTypeBooked, booked.OccupancyType)
	assert.Nil(t, booked.OfferID)

	held := slotByIndex(day, 22)
	require.NotNil(t, held)
	assert.Equal(t, OccupancyTypeOnHold, held.OccupancyType)
	require.NotNil(t, held.OfferID)
	assert.Equal(t, offerID, *held.OfferID)

	target := slotByIndex(day, 24)
	require.NotNil(t, target)
	assert.Equal(t, OccupancyTypeOnHold, target.OccupancyType)
	assert.Nil(t, target.OfferID)

	// Второй день свободен целиком
	next := resp.Days[1]
	require.Len(t, next.Slots, 3)
	for _, cell := range next.Slots {
		assert.Equal(t, OccupancyTypeAvailable, cell.OccupancyType)
	}
}

func TestExecute_PatternChangeMidWindow(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
	f.patterns.patterns = []*domain.WeeklyAvailabilityPattern{
		weekPattern(1, date(2025, 1, 1), 20),
		weekPattern(2, date(2025, 10, 20), 22),
	}

	// Окно захватывает две недели: до и после смены шаблона
	resp, err := f.uc.Execute(context.Background(), &Request{
		TutorID:   7,
		StartDate: date(2025, 10, 17),
		EndDate:   date(2025, 10, 20),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 4)

	before := resp.Days[0]
	require.Len(t, before.Slots, 1)
	assert.Equal(t, 20, before.Slots[0].SlotIndex)

	after := resp.Days[3]
	require.Len(t, after.Slots, 1)
	assert.Equal(t, 22, after.Slots[0].SlotIndex)
}

func TestExecute_PastCellsOmitted(t *testing.T) {
	// Сегодня 15.10, 10:30 UTC: слот 20 уже закончился, слот 22 ещё идёт
	f := newFixture(time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), &Request{
		TutorID:   7,
		StartDate: date(2025, 10, 14),
		EndDate:   date(2025, 10, 15),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	assert.Empty(t, resp.Days[0].Slots)

	today := resp.Days[1]
	assert.Nil(t, slotByIndex(today, 20))
	assert.NotNil(t, slotByIndex(today, 22))
	assert.NotNil(t, slotByIndex(today, 24))
}

func TestExecute_NoPatterns(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
	f.patterns.patterns = nil

	resp, err := f.uc.Execute(context.Background(), &Request{
		TutorID:   7,
		StartDate: date(2025, 10, 15),
		EndDate:   date(2025, 10, 15),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestExecute_InvalidRange(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), &Request{
		TutorID:   7,
		StartDate: date(2025, 10, 16),
		EndDate:   date(2025, 10, 15),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_RangeTooWide(t *testing.T) {
	f := newFixture(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), &Request{
		TutorID:   7,
		StartDate: date(2025, 10, 1),
		EndDate:   date(2025, 10, 1).AddDate(0, 0, domain.MaxScheduleWindowDays),
	})
	assert.ErrorIs(t, err, ErrRangeTooWide)
}
