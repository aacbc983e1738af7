package complete_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	booking      *domain.Booking
	updatedSlots map[int64]domain.SlotStatus
	slotNotFound bool
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.booking, nil
}

func (r *fakeBookingRepo) GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error) {
	if r.slotNotFound {
		return nil, bookingRepo.ErrSlotNotFound
	}
	for _, s := range r.booking.Slots {
		if s.ID == slotID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrSlotNotFound
}

func (r *fakeBookingRepo) UpdateSlotStatus(ctx context.Context, slotID int64, status domain.SlotStatus) error {
	if r.updatedSlots == nil {
		r.updatedSlots = make(map[int64]domain.SlotStatus)
	}
	r.updatedSlots[slotID] = status
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func twoSlotBooking() *domain.Booking {
	return &domain.Booking{
		ID:        1,
		LearnerID: 3,
		TutorID:   7,
		Status:    domain.StatusConfirmed,
		Slots: []*domain.BookedSlot{
			{ID: 101, BookingID: 1, BookedDate: date(2025, 10, 15), SlotIndex: 20, Status: domain.SlotStatusPending},
			{ID: 102, BookingID: 1, BookedDate: date(2025, 10, 16), SlotIndex: 20, Status: domain.SlotStatusPending},
		},
	}
}

func newTestUseCase(repo *fakeBookingRepo) *UseCase {
	return NewUseCase(repo, &fakeTxManager{}, &nopLogger{})
}

func TestExecute_CompletesFirstSlot(t *testing.T) {
	repo := &fakeBookingRepo{booking: twoSlotBooking()}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 101, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.SlotID)
	assert.Equal(t, string(domain.SlotStatusAwaitingConfirmation), resp.Status)
	assert.Equal(t, domain.SlotStatusAwaitingConfirmation, repo.updatedSlots[101])
}

func TestExecute_OrderEnforced(t *testing.T) {
	repo := &fakeBookingRepo{booking: twoSlotBooking()}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 102, UserID: 7})
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.Empty(t, repo.updatedSlots)
}

func TestExecute_IdempotentRetry(t *testing.T) {
	booking := twoSlotBooking()
	booking.Slots[0].Status = domain.SlotStatusAwaitingConfirmation
	repo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 101, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, string(domain.SlotStatusAwaitingConfirmation), resp.Status)
	// Повторный запрос не трогает хранилище
	assert.Empty(t, repo.updatedSlots)
}

func TestExecute_OnlyTutorCanComplete(t *testing.T) {
	repo := &fakeBookingRepo{booking: twoSlotBooking()}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 101, UserID: 3})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_SlotNotFound(t *testing.T) {
	repo := &fakeBookingRepo{booking: twoSlotBooking(), slotNotFound: true}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 999, UserID: 7})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_CancelledSlotNotCompletable(t *testing.T) {
	booking := twoSlotBooking()
	booking.Slots[0].Status = domain.SlotStatusCancelled
	repo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 101, UserID: 7})
	assert.ErrorIs(t, err, ErrSlotNotPending)
}
