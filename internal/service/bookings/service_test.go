package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
	paymentClient "github.com/m04kA/SMC-TutoringService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-TutoringService/internal/service/bookings/models"
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

type fakeBookingRepo struct {
	booking      *domain.Booking
	cancelled    bool
	fundStatuses map[int64]domain.HeldFundStatus
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	if r.booking == nil {
		return nil, 0, nil
	}
	return []*domain.Booking{r.booking}, 1, nil
}

func (r *fakeBookingRepo) GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error) {
	if r.booking != nil {
		for _, s := range r.booking.Slots {
			if s.ID == slotID {
				return s, nil
			}
		}
	}
	return nil, bookingRepo.ErrSlotNotFound
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.booking.Status = status
	return nil
}

func (r *fakeBookingRepo) UpdateSlotStatus(ctx context.Context, slotID int64, status domain.SlotStatus) error {
	for _, s := range r.booking.Slots {
		if s.ID == slotID {
			s.Status = status
		}
	}
	return nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string, cancelledAt time.Time) error {
	r.cancelled = true
	return nil
}

func (r *fakeBookingRepo) UpdateFundStatus(ctx context.Context, fundID int64, status domain.HeldFundStatus) error {
	if r.fundStatuses == nil {
		r.fundStatuses = make(map[int64]domain.HeldFundStatus)
	}
	r.fundStatuses[fundID] = status
	return nil
}

type fakeDisputeRepo struct {
	open []*domain.Dispute
}

func (r *fakeDisputeRepo) ListOpenByBookingID(ctx context.Context, bookingID int64) ([]*domain.Dispute, error) {
	return r.open, nil
}

type paymentCall struct {
	fundID    int64
	reference string
}

type fakePaymentClient struct {
	refunds  []paymentCall
	releases []paymentCall
	err      error
}

func (c *fakePaymentClient) RefundToLearner(ctx context.Context, heldFundID int64, reference string) error {
	if c.err != nil {
		return c.err
	}
	c.refunds = append(c.refunds, paymentCall{fundID: heldFundID, reference: reference})
	return nil
}

func (c *fakePaymentClient) ReleaseToTutor(ctx context.Context, heldFundID int64, reference string) error {
	if c.err != nil {
		return c.err
	}
	c.releases = append(c.releases, paymentCall{fundID: heldFundID, reference: reference})
	return nil
}

type fixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	disputes *fakeDisputeRepo
	payments *fakePaymentClient
}

func newFixture() *fixture {
	bookings := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        1,
			LearnerID: 3,
			TutorID:   7,
			Status:    domain.StatusConfirmed,
			Slots: []*domain.BookedSlot{
				{
					ID:         101,
					BookingID:  1,
					BookedDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
					SlotIndex:  20,
					Status:     domain.SlotStatusPending,
					Fund:       &domain.HeldFund{ID: 9, Status: domain.FundHeld},
				},
				{
					ID:         102,
					BookingID:  1,
					BookedDate: time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC),
					SlotIndex:  20,
					Status:     domain.SlotStatusCompleted,
					Fund:       &domain.HeldFund{ID: 8, Status: domain.FundReleasedToTutor},
				},
			},
		},
	}
	disputes := &fakeDisputeRepo{}
	payments := &fakePaymentClient{}

	svc := NewService(
		bookings,
		disputes,
		payments,
		&fakeTxManager{},
		&fixedTime{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)},
		&nopLogger{},
	)

	return &fixture{svc: svc, bookings: bookings, disputes: disputes, payments: payments}
}

func TestCancel_RefundsHeldFundsOnly(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             3,
		CancellationReason: "переезд",
	})
	require.NoError(t, err)

	assert.True(t, f.bookings.cancelled)
	assert.Equal(t, domain.StatusCancelled, f.bookings.booking.Status)

	// Возврат только по held-средствам неотменённого ранее занятия
	require.Len(t, f.payments.refunds, 1)
	assert.Equal(t, int64(9), f.payments.refunds[0].fundID)
	assert.Equal(t, "booking-1-cancel", f.payments.refunds[0].reference)
	assert.Equal(t, domain.FundRefundedToLearner, f.bookings.fundStatuses[9])

	// Завершённое занятие не трогается
	assert.Equal(t, domain.SlotStatusCompleted, f.bookings.booking.Slots[1].Status)
	assert.NotContains(t, f.bookings.fundStatuses, int64(8))
}

func TestCancel_EmptyReason(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 3})
	assert.ErrorIs(t, err, ErrEmptyReason)
	assert.False(t, f.bookings.cancelled)
}

func TestCancel_TerminalBooking(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Status = domain.StatusComplete

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             3,
		CancellationReason: "передумал",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AccessDenied(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             99,
		CancellationReason: "причина",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_BookingNotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 999, &models.CancelBookingRequest{
		UserID:             3,
		CancellationReason: "причина",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_PaymentServiceUnavailable(t *testing.T) {
	f := newFixture()
	f.payments.err = paymentClient.ErrServiceUnavailable

	err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             3,
		CancellationReason: "переезд",
	})
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
}

func TestFinalizeSlot_ReleasesFundAndCompletes(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Slots[0].Status = domain.SlotStatusAwaitingConfirmation

	err := f.svc.FinalizeSlot(context.Background(), 101)
	require.NoError(t, err)

	require.Len(t, f.payments.releases, 1)
	assert.Equal(t, int64(9), f.payments.releases[0].fundID)
	assert.Equal(t, "slot-101-release", f.payments.releases[0].reference)
	assert.Equal(t, domain.FundReleasedToTutor, f.bookings.fundStatuses[9])
	assert.Equal(t, domain.SlotStatusCompleted, f.bookings.booking.Slots[0].Status)

	// Оба занятия завершены - бронирование закрывается
	assert.Equal(t, domain.StatusComplete, f.bookings.booking.Status)
}

func TestFinalizeSlot_OpenDisputeBlocks(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Slots[0].Status = domain.SlotStatusAwaitingConfirmation
	f.disputes.open = []*domain.Dispute{
		{ID: 5, BookedSlotID: 101, Status: domain.DisputePendingReconciliation},
	}

	err := f.svc.FinalizeSlot(context.Background(), 101)
	assert.ErrorIs(t, err, ErrSlotDisputed)
	assert.Empty(t, f.payments.releases)
	assert.Equal(t, domain.SlotStatusAwaitingConfirmation, f.bookings.booking.Slots[0].Status)
}

func TestFinalizeSlot_PendingSlotNotFinalizable(t *testing.T) {
	f := newFixture()

	err := f.svc.FinalizeSlot(context.Background(), 101)
	assert.ErrorIs(t, err, ErrSlotNotFinalizable)
}

func TestFinalizeSlot_IdempotentForCompleted(t *testing.T) {
	f := newFixture()

	err := f.svc.FinalizeSlot(context.Background(), 102)
	require.NoError(t, err)
	assert.Empty(t, f.payments.releases)
}

func TestFinalizeSlot_PaymentServiceUnavailable(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Slots[0].Status = domain.SlotStatusAwaitingConfirmation
	f.payments.err = paymentClient.ErrServiceUnavailable

	err := f.svc.FinalizeSlot(context.Background(), 101)
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
}

func TestGetByID_DerivesStatusFromSlots(t *testing.T) {
	f := newFixture()
	f.disputes.open = []*domain.Dispute{
		{ID: 5, BookedSlotID: 101, Status: domain.DisputePendingReconciliation},
	}

	resp, err := f.svc.GetByID(context.Background(), 1, 3)
	require.NoError(t, err)

	// Хранимый статус confirmed, но открытый спор переводит ответ
	// в dispute_requested
	assert.Equal(t, string(domain.StatusDisputeRequested), resp.Status)
	require.Len(t, resp.Slots, 2)
}

func TestGetByID_AccessDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 404, 3)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
