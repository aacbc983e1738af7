package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSlotBooking() *Booking {
	return &Booking{
		ID:     1,
		Status: StatusConfirmed,
		Slots: []*BookedSlot{
			{ID: 101, BookedDate: date(2025, 10, 15), SlotIndex: 20, Status: SlotStatusPending},
			{ID: 102, BookedDate: date(2025, 10, 16), SlotIndex: 20, Status: SlotStatusPending},
			{ID: 103, BookedDate: date(2025, 10, 17), SlotIndex: 20, Status: SlotStatusPending},
		},
	}
}

func TestCompleteSlot_OrderEnforced(t *testing.T) {
	b := threeSlotBooking()

	// Завершение S2 раньше S1 запрещено
	_, err := b.CompleteSlot(102)
	assert.ErrorIs(t, err, ErrOutOfOrderCompletion)

	// Последовательное завершение S1 -> S2 -> S3 проходит
	for _, id := range []int64{101, 102, 103} {
		slot, err := b.CompleteSlot(id)
		require.NoError(t, err)
		assert.Equal(t, SlotStatusAwaitingConfirmation, slot.Status)

		// Следующий слот завершается только после финализации предыдущего
		slot.Status = SlotStatusCompleted
	}
}

func TestCompleteSlot_SameDayOrderedByIndex(t *testing.T) {
	b := &Booking{
		Status: StatusConfirmed,
		Slots: []*BookedSlot{
			{ID: 201, BookedDate: date(2025, 10, 15), SlotIndex: 22, Status: SlotStatusPending},
			{ID: 202, BookedDate: date(2025, 10, 15), SlotIndex: 20, Status: SlotStatusPending},
		},
	}

	// Слот 22 позже слота 20 того же дня
	_, err := b.CompleteSlot(201)
	assert.ErrorIs(t, err, ErrOutOfOrderCompletion)

	_, err = b.CompleteSlot(202)
	require.NoError(t, err)
}

func TestCompleteSlot_Idempotent(t *testing.T) {
	b := threeSlotBooking()

	slot, err := b.CompleteSlot(101)
	require.NoError(t, err)
	assert.Equal(t, SlotStatusAwaitingConfirmation, slot.Status)

	// Повторный вызов (ретрай после таймаута) - no-op, не ошибка
	again, err := b.CompleteSlot(101)
	require.NoError(t, err)
	assert.Equal(t, SlotStatusAwaitingConfirmation, again.Status)
}

func TestCompleteSlot_NotPending(t *testing.T) {
	b := threeSlotBooking()
	b.Slots[0].Status = SlotStatusCancelled

	_, err := b.CompleteSlot(101)
	assert.ErrorIs(t, err, ErrSlotNotPending)

	_, err = b.CompleteSlot(999)
	assert.ErrorIs(t, err, ErrSlotNotPending)
}

func TestCancel(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty reason rejected", func(t *testing.T) {
		b := threeSlotBooking()
		assert.ErrorIs(t, b.Cancel("", now), ErrEmptyReasonRequired)
		assert.Equal(t, StatusConfirmed, b.Status)
	})

	t.Run("cancels booking and non-terminal slots", func(t *testing.T) {
		b := threeSlotBooking()
		b.Slots[0].Status = SlotStatusCompleted

		require.NoError(t, b.Cancel("schedule conflict", now))

		assert.Equal(t, StatusCancelled, b.Status)
		assert.Equal(t, SlotStatusCompleted, b.Slots[0].Status)
		assert.Equal(t, SlotStatusCancelled, b.Slots[1].Status)
		assert.Equal(t, SlotStatusCancelled, b.Slots[2].Status)
		require.NotNil(t, b.CancelledAt)
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		b := threeSlotBooking()
		b.Status = StatusComplete
		assert.ErrorIs(t, b.Cancel("too late", now), ErrBookingAlreadyTerminal)

		b.Status = StatusCancelled
		assert.ErrorIs(t, b.Cancel("again", now), ErrBookingAlreadyTerminal)
	})

	t.Run("dispute_requested booking can be cancelled", func(t *testing.T) {
		b := threeSlotBooking()
		b.Status = StatusDisputeRequested
		require.NoError(t, b.Cancel("agreed to cancel", now))
		assert.Equal(t, StatusCancelled, b.Status)
	})
}

func TestDeriveBookingStatus(t *testing.T) {
	noDisputes := func(int64) bool { return false }

	tests := []struct {
		name     string
		statuses []SlotStatus
		open     map[int64]bool
		want     BookingStatus
	}{
		{
			name:     "all completed",
			statuses: []SlotStatus{SlotStatusCompleted, SlotStatusCompleted},
			want:     StatusComplete,
		},
		{
			name:     "all cancelled",
			statuses: []SlotStatus{SlotStatusCancelled, SlotStatusCancelled},
			want:     StatusCancelled,
		},
		{
			name:     "disputed slot dominates completion",
			statuses: []SlotStatus{SlotStatusCompleted, SlotStatusCompleted, SlotStatusCancelledDisputed},
			want:     StatusDisputed,
		},
		{
			name:     "open dispute marks dispute_requested",
			statuses: []SlotStatus{SlotStatusCompleted, SlotStatusAwaitingConfirmation},
			open:     map[int64]bool{1: true},
			want:     StatusDisputeRequested,
		},
		{
			name:     "in progress",
			statuses: []SlotStatus{SlotStatusCompleted, SlotStatusPending},
			want:     StatusConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := make([]*BookedSlot, len(tt.statuses))
			for i, st := range tt.statuses {
				slots[i] = &BookedSlot{ID: int64(i), Status: st}
			}

			hasOpen := noDisputes
			if tt.open != nil {
				hasOpen = func(id int64) bool { return tt.open[id] }
			}

			assert.Equal(t, tt.want, DeriveBookingStatus(slots, hasOpen))
		})
	}
}

func TestDeriveBookingStatus_OrderIndependent(t *testing.T) {
	slots := []*BookedSlot{
		{ID: 1, Status: SlotStatusCompleted},
		{ID: 2, Status: SlotStatusCancelledDisputed},
		{ID: 3, Status: SlotStatusCompleted},
	}
	reversed := []*BookedSlot{slots[2], slots[1], slots[0]}

	none := func(int64) bool { return false }
	assert.Equal(t, DeriveBookingStatus(slots, none), DeriveBookingStatus(reversed, none))
}

func TestBookingTransitions(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.CanTransitionTo(StatusDisputeRequested))
	assert.True(t, b.CanTransitionTo(StatusCancelled))
	assert.True(t, b.CanTransitionTo(StatusComplete))
	assert.False(t, b.CanTransitionTo(StatusDisputed))

	b.Status = StatusDisputeRequested
	assert.True(t, b.CanTransitionTo(StatusDisputed))
	assert.True(t, b.CanTransitionTo(StatusConfirmed))
	assert.False(t, b.CanTransitionTo(StatusComplete))

	b.Status = StatusComplete
	assert.False(t, b.CanTransitionTo(StatusCancelled))
}
