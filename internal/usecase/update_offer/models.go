package update_offer

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

// Request модель запроса на обновление оффера
// Набор слотов заменяется целиком: клиент присылает итоговый выбор
type Request struct {
	OfferID    int64           // ID оффера
	TutorID    int64           // ID репетитора (автор оффера)
	Selections []SlotSelection // итоговый набор ячеек
}

// SlotChangeResponse один слот в сводке изменений
type SlotChangeResponse struct {
	SlotDateTime     time.Time `json:"slotDateTime"`
	DisplayDate      string    `json:"displayDate"`
	DisplayStartTime string    `json:"displayStartTime"`
}

// Response модель ответа с обновлённым оффером
// Added и Removed - пользовательская сводка изменений набора слотов
type Response struct {
	ID         int64                `json:"id"`
	TotalPrice float64              `json:"totalPrice"`
	ExpiresAt  time.Time            `json:"expiresAt"`
	SlotCount  int                  `json:"slotCount"`
	Added      []SlotChangeResponse `json:"added"`
	Removed    []SlotChangeResponse `json:"removed"`
}

func toSlotChanges(slots []domain.OfferedSlot) []SlotChangeResponse {
	changes := make([]SlotChangeResponse, 0, len(slots))
	for _, slot := range slots {
		change := SlotChangeResponse{SlotDateTime: slot.SlotDateTime}
		if display, err := domain.ToDisplayTime(slot.SlotDateTime, slot.SlotIndex); err == nil {
			change.DisplayDate = display.Date.Format(domain.DateFormat)
			change.DisplayStartTime = display.StartTime.String()
		}
		changes = append(changes, change)
	}
	return changes
}
