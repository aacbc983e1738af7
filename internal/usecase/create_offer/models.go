package create_offer

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// SlotSelection одна выбранная ячейка отображаемой (UTC+7) недельной сетки
type SlotSelection struct {
	WeekStart time.Time        // понедельник недели
	DayInWeek int              // 0 = понедельник ... 6 = воскресенье
	SlotIndex domain.SlotIndex // индекс в отображаемой сетке
}

// Request модель запроса на создание оффера
type Request struct {
	TutorID    int64           // ID репетитора (автор оффера)
	LearnerID  int64           // ID ученика
	LessonID   int64           // ID урока
	Selections []SlotSelection // выбранные ячейки, возможно из разных недель
}

// OfferedSlotResponse один предложенный слот в ответе
type OfferedSlotResponse struct {
	SlotDateTime time.Time `json:"slotDateTime"` // момент начала, UTC+0
	SlotIndex    int       `json:"slotIndex"`    // хранимый индекс

	// Отображаемое (UTC+7) представление
	DisplayDate      string `json:"displayDate"`
	DisplayStartTime string `json:"displayStartTime"`
}

// Response модель ответа с созданным оффером
type Response struct {
	ID              int64                 `json:"id"`
	TutorID         int64                 `json:"tutorId"`
	LearnerID       int64                 `json:"learnerId"`
	LessonID        int64                 `json:"lessonId"`
	LessonName      string                `json:"lessonName"`
	PricePerSlot    float64               `json:"pricePerSlot"`
	TotalPrice      float64               `json:"totalPrice"`
	DurationMinutes int                   `json:"durationMinutes"`
	Slots           []OfferedSlotResponse `json:"slots"`
	ExpiresAt       time.Time             `json:"expiresAt"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// toResponse конвертирует созданный оффер в ответ
func toResponse(offer *domain.Offer, lessonName string) *Response {
	resp := &Response{
		ID:              offer.ID,
		TutorID:         offer.TutorID,
		LearnerID:       offer.LearnerID,
		LessonID:        offer.LessonID,
		LessonName:      lessonName,
		PricePerSlot:    offer.PricePerSlot,
		TotalPrice:      offer.TotalPrice,
		DurationMinutes: offer.DurationMinutes,
		ExpiresAt:       offer.ExpiresAt,
		CreatedAt:       offer.CreatedAt,
	}

	for _, slot := range offer.Slots {
		resp.Slots = append(resp.Slots, toSlotResponse(slot))
	}

	return resp
}

func toSlotResponse(slot domain.OfferedSlot) OfferedSlotResponse {
	resp := OfferedSlotResponse{
		SlotDateTime: slot.SlotDateTime,
		SlotIndex:    int(slot.SlotIndex),
	}

	if display, err := domain.ToDisplayTime(slot.SlotDateTime, slot.SlotIndex); err == nil {
		resp.DisplayDate = display.Date.Format(domain.DateFormat)
		resp.DisplayStartTime = display.StartTime.String()
	}

	return resp
}
