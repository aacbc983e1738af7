package domain

import "time"

// HeldFundStatus статус эскроу-записи оплаты одного занятия
type HeldFundStatus string

const (
	FundHeld                   HeldFundStatus = "held"
	FundReleasedToTutor        HeldFundStatus = "released_to_tutor"
	FundRefundedToLearner      HeldFundStatus = "refunded_to_learner"
	FundDisputed               HeldFundStatus = "disputed"
	FundReturnedToTutorAccount HeldFundStatus = "returned_to_tutor_account"
)

// HeldFund эскроу-запись оплаты одного BookedSlot
// Создаётся при бронировании; перевод репетитору выполняет внешний таймер
// через ~72 часа после завершения занятия, спорные переходы - резолюция спора
type HeldFund struct {
	ID           int64
	BookedSlotID int64
	Amount       float64
	Status       HeldFundStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSettled проверяет, что средства уже дошли до конечного получателя
func (f *HeldFund) IsSettled() bool {
	return f.Status == FundReleasedToTutor ||
		f.Status == FundRefundedToLearner ||
		f.Status == FundReturnedToTutorAccount
}

// CanTransitionTo проверяет допустимость перехода статуса средств
//
// held -> released_to_tutor | refunded_to_learner | disputed
// disputed -> refunded_to_learner | released_to_tutor | returned_to_tutor_account | held
//
// Возврат disputed -> held происходит при отзыве спора: средства
// возвращаются на обычный таймер перевода репетитору
func (f *HeldFund) CanTransitionTo(next HeldFundStatus) bool {
	switch f.Status {
	case FundHeld:
		return next == FundReleasedToTutor || next == FundRefundedToLearner || next == FundDisputed
	case FundDisputed:
		return next == FundRefundedToLearner || next == FundReleasedToTutor ||
			next == FundReturnedToTutorAccount || next == FundHeld
	default:
		return false
	}
}
