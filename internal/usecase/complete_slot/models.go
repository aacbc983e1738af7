package complete_slot

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// Request модель запроса на завершение слота
type Request struct {
	SlotID int64 // ID слота бронирования
	UserID int64 // ID пользователя (должен быть репетитором бронирования)
}

// Response модель ответа с завершённым слотом
type Response struct {
	SlotID           int64     `json:"slotId"`
	BookingID        int64     `json:"bookingId"`
	Status           string    `json:"status"`
	BookedDate       time.Time `json:"bookedDate"`
	SlotIndex        int       `json:"slotIndex"`
	DisplayDate      string    `json:"displayDate"`
	DisplayStartTime string    `json:"displayStartTime"`
}

func toResponse(slot *domain.BookedSlot) *Response {
	resp := &Response{
		SlotID:     slot.ID,
		BookingID:  slot.BookingID,
		Status:     string(slot.Status),
		BookedDate: slot.BookedDate,
		SlotIndex:  int(slot.SlotIndex),
	}
	if display, err := domain.ToDisplayTime(slot.BookedDate, slot.SlotIndex); err == nil {
		resp.DisplayDate = display.Date.Format(domain.DateFormat)
		resp.DisplayStartTime = display.StartTime.String()
	}
	return resp
}
