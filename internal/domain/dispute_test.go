package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFundStatusForOutcome(t *testing.T) {
	tests := []struct {
		outcome DisputeOutcome
		want    HeldFundStatus
	}{
		{OutcomeLearnerWin, FundRefundedToLearner},
		{OutcomeTutorWin, FundReturnedToTutorAccount},
		{OutcomeDraw, FundDisputed},
		{OutcomeWithdrawn, FundHeld},
	}

	for _, tt := range tests {
		got, ok := FundStatusForOutcome(tt.outcome)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := FundStatusForOutcome("unknown")
	assert.False(t, ok)
}

func TestSlotStatusForOutcome(t *testing.T) {
	got, ok := SlotStatusForOutcome(OutcomeLearnerWin)
	assert.True(t, ok)
	assert.Equal(t, SlotStatusCancelledDisputed, got)

	for _, outcome := range []DisputeOutcome{OutcomeTutorWin, OutcomeDraw, OutcomeWithdrawn} {
		got, ok := SlotStatusForOutcome(outcome)
		assert.True(t, ok)
		assert.Equal(t, SlotStatusCompleted, got)
	}
}

func TestDisputeIsOpen(t *testing.T) {
	d := &Dispute{Status: DisputePendingReconciliation}
	assert.True(t, d.IsOpen())

	d.Status = DisputeAwaitingStaffReview
	assert.True(t, d.IsOpen())

	d.Status = DisputeResolvedLearnerWin
	assert.False(t, d.IsOpen())
}

func TestHeldFundTransitions(t *testing.T) {
	f := &HeldFund{Status: FundHeld}
	assert.True(t, f.CanTransitionTo(FundReleasedToTutor))
	assert.True(t, f.CanTransitionTo(FundRefundedToLearner))
	assert.True(t, f.CanTransitionTo(FundDisputed))
	assert.False(t, f.CanTransitionTo(FundReturnedToTutorAccount))

	f.Status = FundDisputed
	assert.True(t, f.CanTransitionTo(FundReturnedToTutorAccount))
	assert.True(t, f.CanTransitionTo(FundRefundedToLearner))

	f.Status = FundReleasedToTutor
	assert.False(t, f.CanTransitionTo(FundRefundedToLearner))
	assert.True(t, f.IsSettled())
}

func TestOfferExpiry(t *testing.T) {
	now := date(2025, 10, 15)
	o := &Offer{ExpiresAt: OfferExpiry(now)}

	assert.False(t, o.IsExpired(now))
	assert.False(t, o.IsExpired(now.Add(47*time.Hour)))
	assert.True(t, o.IsExpired(o.ExpiresAt))
}

func TestDiffOfferedSlots(t *testing.T) {
	old := []OfferedSlot{
		{SlotDateTime: date(2025, 10, 15).Add(10 * time.Hour)},
		{SlotDateTime: date(2025, 10, 16).Add(10 * time.Hour)},
	}
	updated := []OfferedSlot{
		{SlotDateTime: date(2025, 10, 16).Add(10 * time.Hour)},
		{SlotDateTime: date(2025, 10, 17).Add(10 * time.Hour)},
	}

	added, removed := DiffOfferedSlots(old, updated)
	assert.Len(t, added, 1)
	assert.Len(t, removed, 1)
	assert.Equal(t, date(2025, 10, 17).Add(10*time.Hour), added[0].SlotDateTime)
	assert.Equal(t, date(2025, 10, 15).Add(10*time.Hour), removed[0].SlotDateTime)
}
