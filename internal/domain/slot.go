package domain

import "time"

// SlotStatus статус одного занятия внутри бронирования
type SlotStatus string

const (
	SlotStatusPending              SlotStatus = "pending"
	SlotStatusAwaitingConfirmation SlotStatus = "awaiting_confirmation"
	SlotStatusCompleted            SlotStatus = "completed"
	SlotStatusCancelled            SlotStatus = "cancelled"
	SlotStatusCancelledDisputed    SlotStatus = "cancelled_disputed"
)

// BookedSlot одно календарное занятие внутри бронирования
// Дата и индекс хранятся в UTC+0
type BookedSlot struct {
	ID         int64
	BookingID  int64
	BookedDate time.Time
	SlotIndex  SlotIndex
	Status     SlotStatus
	Note       *string
	Fund       *HeldFund

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal проверяет, что слот в конечном статусе
func (s *BookedSlot) IsTerminal() bool {
	return s.Status == SlotStatusCompleted ||
		s.Status == SlotStatusCancelled ||
		s.Status == SlotStatusCancelledDisputed
}

// IsActive проверяет, что слот занимает место в календаре
// (не отменён ни обычным путём, ни через спор)
func (s *BookedSlot) IsActive() bool {
	return s.Status != SlotStatusCancelled && s.Status != SlotStatusCancelledDisputed
}

// StartUTC возвращает момент начала занятия в UTC
func (s *BookedSlot) StartUTC() time.Time {
	return SlotStartUTC(s.BookedDate, s.SlotIndex)
}

// Before сравнивает слоты хронологически по (дата, индекс)
func (s *BookedSlot) Before(other *BookedSlot) bool {
	return s.StartUTC().Before(other.StartUTC())
}

// CanTransitionTo проверяет допустимость перехода статуса слота
//
// pending -> awaiting_confirmation | cancelled
// awaiting_confirmation -> completed | cancelled_disputed
// completed, cancelled, cancelled_disputed - конечные
func (s *BookedSlot) CanTransitionTo(next SlotStatus) bool {
	switch s.Status {
	case SlotStatusPending:
		return next == SlotStatusAwaitingConfirmation || next == SlotStatusCancelled
	case SlotStatusAwaitingConfirmation:
		return next == SlotStatusCompleted || next == SlotStatusCancelledDisputed
	default:
		return false
	}
}

// FirstPendingSlot возвращает хронологически первый pending-слот списка
// или nil, если pending-слотов нет
func FirstPendingSlot(slots []*BookedSlot) *BookedSlot {
	var first *BookedSlot
	for _, s := range slots {
		if s.Status != SlotStatusPending {
			continue
		}
		if first == nil || s.Before(first) {
			first = s
		}
	}
	return first
}
