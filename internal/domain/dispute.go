package domain

import "time"

// DisputeStatus статус спора
type DisputeStatus string

const (
	DisputePendingReconciliation DisputeStatus = "pending_reconciliation"
	DisputeAwaitingStaffReview   DisputeStatus = "awaiting_staff_review"
	DisputeClosedWithdrawn       DisputeStatus = "closed_withdrawn"
	DisputeClosedResolved        DisputeStatus = "closed_resolved"
	DisputeResolvedLearnerWin    DisputeStatus = "resolved_learner_win"
	DisputeResolvedTutorWin      DisputeStatus = "resolved_tutor_win"
	DisputeResolvedDraw          DisputeStatus = "resolved_draw"
)

// DisputeOutcome исход резолюции спора
type DisputeOutcome string

const (
	OutcomeLearnerWin DisputeOutcome = "learner_win"
	OutcomeTutorWin   DisputeOutcome = "tutor_win"
	OutcomeDraw       DisputeOutcome = "draw"
	OutcomeWithdrawn  DisputeOutcome = "withdrawn"
)

// Dispute спор ученика по одному BookedSlot, открытый в окне
// awaiting_confirmation после завершения занятия
type Dispute struct {
	ID            int64
	CaseNumber    string
	BookedSlotID  int64
	LearnerID     int64
	LearnerReason string
	Status        DisputeStatus
	Resolution    *string

	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// IsOpen проверяет, что спор ещё не закрыт
func (d *Dispute) IsOpen() bool {
	return d.Status == DisputePendingReconciliation || d.Status == DisputeAwaitingStaffReview
}

// StatusForOutcome возвращает конечный статус спора для исхода
func StatusForOutcome(outcome DisputeOutcome) (DisputeStatus, bool) {
	switch outcome {
	case OutcomeLearnerWin:
		return DisputeResolvedLearnerWin, true
	case OutcomeTutorWin:
		return DisputeResolvedTutorWin, true
	case OutcomeDraw:
		return DisputeResolvedDraw, true
	case OutcomeWithdrawn:
		return DisputeClosedWithdrawn, true
	default:
		return "", false
	}
}

// FundStatusForOutcome возвращает статус средств для исхода спора
//
// learner_win -> возврат ученику; tutor_win -> возврат на счёт репетитора;
// withdrawn -> средства остаются held и уходят по обычному таймеру.
// Для draw политика разделения средств определяется вне сервиса:
// средства остаются в статусе disputed до ручного урегулирования
func FundStatusForOutcome(outcome DisputeOutcome) (HeldFundStatus, bool) {
	switch outcome {
	case OutcomeLearnerWin:
		return FundRefundedToLearner, true
	case OutcomeTutorWin:
		return FundReturnedToTutorAccount, true
	case OutcomeDraw:
		return FundDisputed, true
	case OutcomeWithdrawn:
		return FundHeld, true
	default:
		return "", false
	}
}

// SlotStatusForOutcome возвращает статус слота после резолюции спора
// Победа ученика отменяет занятие через спор; в остальных исходах
// занятие считается состоявшимся
func SlotStatusForOutcome(outcome DisputeOutcome) (SlotStatus, bool) {
	switch outcome {
	case OutcomeLearnerWin:
		return SlotStatusCancelledDisputed, true
	case OutcomeTutorWin, OutcomeDraw, OutcomeWithdrawn:
		return SlotStatusCompleted, true
	default:
		return "", false
	}
}
