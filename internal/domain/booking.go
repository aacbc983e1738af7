package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusConfirmed        BookingStatus = "confirmed"
	StatusDisputeRequested BookingStatus = "dispute_requested"
	StatusDisputed         BookingStatus = "disputed"
	StatusCancelled        BookingStatus = "cancelled"
	StatusComplete         BookingStatus = "complete"
)

// Booking договорённость ученика и репетитора на один или несколько
// занятий одного урока. Бронирования не удаляются - только меняют статус
type Booking struct {
	ID         int64
	LearnerID  int64
	TutorID    int64
	LessonID   int64
	Status     BookingStatus
	TotalPrice float64

	// Денормализованные данные урока для истории
	LessonName string

	Slots []*BookedSlot

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal проверяет, что бронирование в конечном статусе
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusComplete
}

// CanBeCancelled проверяет, что бронирование можно отменить
// Отмена возможна из confirmed и dispute_requested
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusDisputeRequested
}

// CanTransitionTo проверяет допустимость перехода статуса бронирования
//
// confirmed -> dispute_requested | cancelled | complete
// dispute_requested -> disputed | confirmed
// disputed -> cancelled | complete
// cancelled, complete - конечные
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusConfirmed:
		return next == StatusDisputeRequested || next == StatusCancelled || next == StatusComplete
	case StatusDisputeRequested:
		return next == StatusDisputed || next == StatusConfirmed
	case StatusDisputed:
		return next == StatusCancelled || next == StatusComplete
	default:
		return false
	}
}

// CompleteSlot переводит слот бронирования в awaiting_confirmation
//
// Разрешено только для pending-слота, который является хронологически
// первым pending-слотом бронирования: занятия завершаются строго по порядку.
// Повторный вызов для слота в awaiting_confirmation - no-op: ответ на
// ретрай после таймаута не должен считаться ошибкой
func (b *Booking) CompleteSlot(slotID int64) (*BookedSlot, error) {
	var target *BookedSlot
	for _, s := range b.Slots {
		if s.ID == slotID {
			target = s
			break
		}
	}
	if target == nil {
		return nil, ErrSlotNotPending
	}

	// Идемпотентность: переход уже применён
	if target.Status == SlotStatusAwaitingConfirmation {
		return target, nil
	}

	if target.Status != SlotStatusPending {
		return nil, ErrSlotNotPending
	}

	first := FirstPendingSlot(b.Slots)
	if first != nil && first.ID != target.ID {
		return nil, ErrOutOfOrderCompletion
	}

	target.Status = SlotStatusAwaitingConfirmation
	return target, nil
}

// Cancel отменяет бронирование и все его неконечные слоты
// Требует непустую причину; из конечных статусов отмена невозможна
func (b *Booking) Cancel(reason string, now time.Time) error {
	if reason == "" {
		return ErrEmptyReasonRequired
	}
	if !b.CanBeCancelled() {
		return ErrBookingAlreadyTerminal
	}

	b.Status = StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now

	for _, s := range b.Slots {
		if !s.IsTerminal() {
			s.Status = SlotStatusCancelled
		}
	}

	return nil
}

// DeriveBookingStatus выводит агрегатный статус бронирования из статусов
// его слотов и наличия открытых споров. Чистая функция, не зависит от
// порядка слотов в списке
//
// Правила:
//   - есть слот cancelled_disputed или спор на рассмотрении -> disputed
//   - есть открытый спор -> dispute_requested
//   - все слоты completed -> complete
//   - все слоты cancelled -> cancelled
//   - иначе -> confirmed (занятия в процессе)
func DeriveBookingStatus(slots []*BookedSlot, hasOpenDispute func(slotID int64) bool) BookingStatus {
	if len(slots) == 0 {
		return StatusConfirmed
	}

	var completed, cancelled, disputed, open int
	for _, s := range slots {
		switch s.Status {
		case SlotStatusCompleted:
			completed++
		case SlotStatusCancelled:
			cancelled++
		case SlotStatusCancelledDisputed:
			disputed++
		}
		if hasOpenDispute != nil && hasOpenDispute(s.ID) {
			open++
		}
	}

	switch {
	case disputed > 0:
		return StatusDisputed
	case open > 0:
		return StatusDisputeRequested
	case completed == len(slots):
		return StatusComplete
	case cancelled == len(slots):
		return StatusCancelled
	default:
		return StatusConfirmed
	}
}
