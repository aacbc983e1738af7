package update_offer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	offerRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/offer"
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
	offer   *domain.Offer
	offered []domain.OfferedSlot
	updated *domain.Offer
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	if r.offer == nil || r.offer.ID != id {
		return nil, offerRepo.ErrOfferNotFound
	}
	return r.offer, nil
}

func (r *fakeOfferRepo) Update(ctx context.Context, offer *domain.Offer) error {
	r.updated = offer
	return nil
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
}

// newFixture собирает оффер с одним слотом 15.10 (хранимый индекс 20)
// Собственный onhold-слот присутствует в сетке занятости
func newFixture(now time.Time) *fixture {
	existing := domain.OfferedSlot{
		ID:           1,
		OfferID:      10,
		SlotDateTime: domain.SlotStartUTC(date(2025, 10, 15), 20),
		SlotIndex:    20,
	}
	offers := &fakeOfferRepo{
		offer: &domain.Offer{
			ID:           10,
			TutorID:      7,
			LearnerID:    3,
			LessonID:     2,
			PricePerSlot: 500,
			TotalPrice:   500,
			Slots:        []domain.OfferedSlot{existing},
			ExpiresAt:    now.Add(24 * time.Hour),
		},
		offered: []domain.OfferedSlot{existing},
	}
	bookings := &fakeBookingRepo{}

	uc := NewUseCase(
		&fakePatternRepo{patterns: []*domain.WeeklyAvailabilityPattern{fullWeekPattern(20, 22)}},
		bookings,
		offers,
		&fakeRescheduleRepo{},
		&fakeTxManager{},
		&nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, offers: offers, bookings: bookings}
}

// Отображаемая сетка сдвинута на +7 часов: хранимый индекс 20 виден
// как 34, хранимый 22 - как 36. Неделя начинается с понедельника 13.10
var weekStart = date(2025, 10, 13)

func keepExistingSelection() SlotSelection {
	return SlotSelection{WeekStart: weekStart, DayInWeek: 2, SlotIndex: 34}
}

func newCellSelection() SlotSelection {
	return SlotSelection{WeekStart: weekStart, DayInWeek: 3, SlotIndex: 36}
}

func TestExecute_AddsSlotKeepingExisting(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    7,
		Selections: []SlotSelection{keepExistingSelection(), newCellSelection()},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.SlotCount)
	assert.Equal(t, float64(1000), resp.TotalPrice)
	assert.Equal(t, domain.OfferExpiry(now), resp.ExpiresAt)
	require.Len(t, resp.Added, 1)
	assert.Equal(t, domain.SlotStartUTC(date(2025, 10, 16), 22), resp.Added[0].SlotDateTime)
	assert.Empty(t, resp.Removed)

	require.NotNil(t, f.offers.updated)
	assert.Len(t, f.offers.updated.Slots, 2)
}

func TestExecute_ReplacesWholeSet(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    7,
		Selections: []SlotSelection{newCellSelection()},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.SlotCount)
	assert.Equal(t, float64(500), resp.TotalPrice)
	require.Len(t, resp.Added, 1)
	require.Len(t, resp.Removed, 1)
	assert.Equal(t, domain.SlotStartUTC(date(2025, 10, 15), 20), resp.Removed[0].SlotDateTime)
}

func TestExecute_OwnHeldCellSelectable(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Единственный выбор - ячейка, уже удерживаемая этим же оффером
	resp, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    7,
		Selections: []SlotSelection{keepExistingSelection()},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Added)
	assert.Empty(t, resp.Removed)
}

func TestExecute_CellHeldByAnotherOffer(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.offers.offered = append(f.offers.offered, domain.OfferedSlot{
		ID:           2,
		OfferID:      11,
		SlotDateTime: domain.SlotStartUTC(date(2025, 10, 16), 22),
		SlotIndex:    22,
	})

	_, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    7,
		Selections: []SlotSelection{newCellSelection()},
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_BookedCellNotSelectable(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.bookings.booked = []*domain.BookedSlot{
		{ID: 200, BookedDate: date(2025, 10, 16), SlotIndex: 22, Status: domain.SlotStatusPending},
	}

	_, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    7,
		Selections: []SlotSelection{newCellSelection()},
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ExpiredOfferNotEditable(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.offers.offer.ExpiresAt = now.Add(-time.Hour)

	_, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    7,
		Selections: []SlotSelection{keepExistingSelection()},
	})
	assert.ErrorIs(t, err, ErrOfferExpired)
}

func TestExecute_OnlyAuthorMayEdit(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    10,
		TutorID:    8,
		Selections: []SlotSelection{keepExistingSelection()},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_EmptySelection(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		OfferID: 10,
		TutorID: 7,
	})
	assert.ErrorIs(t, err, ErrNoSlotsSelected)
}

func TestExecute_OfferNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		OfferID:    999,
		TutorID:    7,
		Selections: []SlotSelection{keepExistingSelection()},
	})
	assert.ErrorIs(t, err, ErrOfferNotFound)
}
