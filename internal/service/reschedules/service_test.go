package reschedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/reschedule"
)

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time {
	return p.now
}

type statusChange struct {
	id     int64
	status domain.RescheduleStatus
}

type fakeRescheduleRepo struct {
	request *domain.RescheduleRequest
	changes []statusChange
}

func (r *fakeRescheduleRepo) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	if r.request == nil || r.request.ID != id {
		return nil, rescheduleRepo.ErrRequestNotFound
	}
	return r.request, nil
}

func (r *fakeRescheduleRepo) UpdateStatus(ctx context.Context, id int64, status domain.RescheduleStatus, respondedAt time.Time) error {
	r.changes = append(r.changes, statusChange{id: id, status: status})
	return nil
}

type slotMove struct {
	slotID    int64
	date      time.Time
	slotIndex domain.SlotIndex
}

type fakeBookingRepo struct {
	booking *domain.Booking
	booked  []*domain.BookedSlot
	moves   []slotMove
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.booking, nil
}

func (r *fakeBookingRepo) GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error) {
	for _, s := range r.booking.Slots {
		if s.ID == slotID {
			return s, nil
		}
	}
	return nil, bookingRepo.ErrSlotNotFound
}

func (r *fakeBookingRepo) GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to time.Time) ([]*domain.BookedSlot, error) {
	return r.booked, nil
}

func (r *fakeBookingRepo) UpdateSlotSchedule(ctx context.Context, slotID int64, bookedDate time.Time, slotIndex domain.SlotIndex) error {
	r.moves = append(r.moves, slotMove{slotID: slotID, date: bookedDate, slotIndex: slotIndex})
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc         *Service
	reschedules *fakeRescheduleRepo
	bookings    *fakeBookingRepo
}

func newFixture(now time.Time) *fixture {
	reschedules := &fakeRescheduleRepo{
		request: &domain.RescheduleRequest{
			ID:              40,
			BookedSlotID:    101,
			Reason:          "болезнь",
			NewSlotDateTime: domain.SlotStartUTC(date(2025, 10, 16), 22),
			NewSlotIndex:    22,
			Status:          domain.ReschedulePendingResponse,
			CreatedAt:       now.Add(-time.Hour),
		},
	}
	bookings := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        1,
			LearnerID: 3,
			TutorID:   7,
			Status:    domain.StatusConfirmed,
			Slots: []*domain.BookedSlot{
				{ID: 101, BookingID: 1, BookedDate: date(2025, 10, 15), SlotIndex: 20, Status: domain.SlotStatusPending},
			},
		},
	}

	svc := NewService(
		reschedules,
		bookings,
		&fakeTxManager{},
		&fixedTime{now: now},
		&nopLogger{},
	)

	return &fixture{svc: svc, reschedules: reschedules, bookings: bookings}
}

func TestRespond_AcceptMovesSlot(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 7, Accept: true})
	require.NoError(t, err)

	require.Len(t, f.bookings.moves, 1)
	assert.Equal(t, int64(101), f.bookings.moves[0].slotID)
	assert.Equal(t, date(2025, 10, 16), f.bookings.moves[0].date)
	assert.Equal(t, domain.SlotIndex(22), f.bookings.moves[0].slotIndex)

	require.Len(t, f.reschedules.changes, 1)
	assert.Equal(t, domain.RescheduleAccepted, f.reschedules.changes[0].status)
}

func TestRespond_RejectKeepsSlot(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 3, Accept: false})
	require.NoError(t, err)

	assert.Empty(t, f.bookings.moves)
	require.Len(t, f.reschedules.changes, 1)
	assert.Equal(t, domain.RescheduleRejected, f.reschedules.changes[0].status)
}

func TestRespond_ExpiredRequestClosedAsRejected(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.reschedules.request.CreatedAt = now.Add(-(domain.RescheduleResponseHours + 1) * time.Hour)

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 7, Accept: true})
	assert.ErrorIs(t, err, ErrRequestExpired)

	require.Len(t, f.reschedules.changes, 1)
	assert.Equal(t, domain.RescheduleRejected, f.reschedules.changes[0].status)
	assert.Empty(t, f.bookings.moves)
}

func TestRespond_TargetTakenWhileWaiting(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.bookings.booked = []*domain.BookedSlot{
		{ID: 200, BookedDate: date(2025, 10, 16), SlotIndex: 22, Status: domain.SlotStatusPending},
	}

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 7, Accept: true})
	assert.ErrorIs(t, err, ErrTargetSlotUnavailable)

	// Запрос остаётся без ответа: отказ должен быть явным
	assert.Empty(t, f.reschedules.changes)
	assert.Empty(t, f.bookings.moves)
}

func TestRespond_MovingSlotIgnoredInTargetCheck(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	// В выборке занятых слотов присутствует сам переносимый слот
	f.bookings.booked = []*domain.BookedSlot{f.bookings.booking.Slots[0]}

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 7, Accept: true})
	assert.NoError(t, err)
}

func TestRespond_AlreadyResponded(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.reschedules.request.Status = domain.RescheduleAccepted

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 7, Accept: true})
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestRespond_AccessDenied(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 99, Accept: true})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRespond_RequestNotFound(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	err := f.svc.Respond(context.Background(), 404, &RespondRequest{UserID: 7, Accept: true})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRespond_MovedSlotMustBePending(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.bookings.booking.Slots[0].Status = domain.SlotStatusAwaitingConfirmation

	err := f.svc.Respond(context.Background(), 40, &RespondRequest{UserID: 7, Accept: true})
	assert.ErrorIs(t, err, ErrSlotNotPending)
}
