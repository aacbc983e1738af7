package domain

import "time"

// RescheduleStatus статус запроса на перенос занятия
type RescheduleStatus string

const (
	ReschedulePendingResponse RescheduleStatus = "pending_response"
	RescheduleAccepted        RescheduleStatus = "accepted"
	RescheduleRejected        RescheduleStatus = "rejected"
)

// RescheduleRequest запрос на перенос ровно одного BookedSlot
// на новые дату и индекс. Пока запрос не отвечен, целевой слот
// удерживается в сетке как занятый
type RescheduleRequest struct {
	ID              int64
	BookedSlotID    int64
	Reason          string
	NewSlotDateTime time.Time
	NewSlotIndex    SlotIndex
	Status          RescheduleStatus

	CreatedAt   time.Time
	RespondedAt *time.Time
}

// IsPending проверяет, что запрос ожидает ответа
func (r *RescheduleRequest) IsPending() bool {
	return r.Status == ReschedulePendingResponse
}

// IsExpired проверяет, что окно ответа на запрос истекло
// Истёкший запрос считается отклонённым: исходный слот остаётся без изменений
func (r *RescheduleRequest) IsExpired(now time.Time) bool {
	return r.IsPending() && now.After(r.CreatedAt.Add(RescheduleResponseHours*time.Hour))
}

// CanRequestReschedule проверяет временное окно запроса переноса:
// до начала исходного занятия должно оставаться не меньше 24 часов
func CanRequestReschedule(slotStart, now time.Time) bool {
	return !now.After(slotStart.Add(-RescheduleNoticeHours * time.Hour))
}
