package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос списка бронирований
type ListBookingsRequest struct {
	UserID    int64   `json:"userId"`
	Role      string  `json:"role"` // "learner" или "tutor"
	Status    *string `json:"status,omitempty"`
	PageIndex int64   `json:"pageIndex"`
	PageSize  int64   `json:"pageSize"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		PageIndex: r.PageIndex,
		PageSize:  r.PageSize,
	}

	switch r.Role {
	case "tutor":
		filter.TutorID = &r.UserID
	default:
		filter.LearnerID = &r.UserID
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// HeldFundResponse эскроу-запись занятия
type HeldFundResponse struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// BookedSlotResponse занятие бронирования с отображаемым (UTC+7) временем
type BookedSlotResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Note   *string `json:"note,omitempty"`

	// Хранимое представление (UTC+0)
	Date      string `json:"date"` // "2025-10-15"
	SlotIndex int    `json:"slotIndex"`

	// Отображаемое представление (UTC+7)
	DisplayDate      string `json:"displayDate"`
	DisplaySlotIndex int    `json:"displaySlotIndex"`
	DisplayStartTime string `json:"displayStartTime"` // "10:00"
	DisplayEndTime   string `json:"displayEndTime"`   // "10:30"

	Fund *HeldFundResponse `json:"fund,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64   `json:"id"`
	LearnerID  int64   `json:"learnerId"`
	TutorID    int64   `json:"tutorId"`
	LessonID   int64   `json:"lessonId"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`

	// Денормализованные данные урока
	LessonName string `json:"lessonName"`

	Slots []BookedSlotResponse `json:"slots,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse страница списка бронирований
type BookingListResponse struct {
	Items      []BookingResponse `json:"items"`
	TotalItems int64             `json:"totalItems"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// status передаётся отдельно: для детального ответа он выводится
// из статусов занятий, а не берётся из хранимого поля
func FromDomainBooking(b *domain.Booking, status domain.BookingStatus) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		LearnerID:          b.LearnerID,
		TutorID:            b.TutorID,
		LessonID:           b.LessonID,
		Status:             string(status),
		TotalPrice:         b.TotalPrice,
		LessonName:         b.LessonName,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	for _, slot := range b.Slots {
		resp.Slots = append(resp.Slots, fromDomainSlot(slot))
	}

	return resp
}

// FromDomainBookingList конвертирует страницу списка в DTO
// Занятия в список не включаются
func FromDomainBookingList(bookings []*domain.Booking, total int64) *BookingListResponse {
	resp := &BookingListResponse{
		Items:      make([]BookingResponse, 0, len(bookings)),
		TotalItems: total,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, booking.Status); bookingResp != nil {
			resp.Items = append(resp.Items, *bookingResp)
		}
	}

	return resp
}

func fromDomainSlot(s *domain.BookedSlot) BookedSlotResponse {
	resp := BookedSlotResponse{
		ID:        s.ID,
		Status:    string(s.Status),
		Note:      s.Note,
		Date:      s.BookedDate.Format(domain.DateFormat),
		SlotIndex: int(s.SlotIndex),
	}

	if display, err := domain.ToDisplayTime(s.BookedDate, s.SlotIndex); err == nil {
		resp.DisplayDate = display.Date.Format(domain.DateFormat)
		resp.DisplaySlotIndex = int(display.SlotIndex)
		resp.DisplayStartTime = display.StartTime.String()
		resp.DisplayEndTime = display.EndTime.String()
	}

	if s.Fund != nil {
		resp.Fund = &HeldFundResponse{
			ID:     s.Fund.ID,
			Amount: s.Fund.Amount,
			Status: string(s.Fund.Status),
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusDisputeRequested,
		domain.StatusDisputed,
		domain.StatusCancelled,
		domain.StatusComplete,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
