package create_reschedule

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// Request модель запроса на перенос занятия
// NewDate и NewSlotIndex задаются в хранимой (UTC+0) сетке
type Request struct {
	SlotID       int64            // ID переносимого слота
	UserID       int64            // ID участника бронирования (ученик или репетитор)
	Reason       string           // причина переноса
	NewDate      time.Time        // хранимая дата целевой ячейки
	NewSlotIndex domain.SlotIndex // хранимый индекс целевой ячейки
}

// Response модель ответа с созданным запросом на перенос
type Response struct {
	ID               int64     `json:"id"`
	BookedSlotID     int64     `json:"bookedSlotId"`
	Status           string    `json:"status"`
	NewSlotDateTime  time.Time `json:"newSlotDateTime"`
	NewSlotIndex     int       `json:"newSlotIndex"`
	DisplayDate      string    `json:"displayDate"`
	DisplayStartTime string    `json:"displayStartTime"`
	RespondBy        time.Time `json:"respondBy"`
}

func toResponse(request *domain.RescheduleRequest) *Response {
	resp := &Response{
		ID:              request.ID,
		BookedSlotID:    request.BookedSlotID,
		Status:          string(request.Status),
		NewSlotDateTime: request.NewSlotDateTime,
		NewSlotIndex:    int(request.NewSlotIndex),
		RespondBy:       request.CreatedAt.Add(domain.RescheduleResponseHours * time.Hour),
	}
	if display, err := domain.ToDisplayTime(request.NewSlotDateTime, request.NewSlotIndex); err == nil {
		resp.DisplayDate = display.Date.Format(domain.DateFormat)
		resp.DisplayStartTime = display.StartTime.String()
	}
	return resp
}
