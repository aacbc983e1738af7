package get_schedule_window

import "time"

// Типы занятости ячейки во внешнем контракте
const (
	OccupancyTypeAvailable = 0
	OccupancyTypeOnHold    = 1
	OccupancyTypeBooked    = 2
)

// Request модель запроса сетки доступности
type Request struct {
	TutorID   int64     // ID репетитора
	StartDate time.Time // Начало окна (дата UTC+0)
	EndDate   time.Time // Конец окна включительно
}

// SlotCellResponse одна ячейка сетки
// Недоступные ячейки в ответ не включаются
type SlotCellResponse struct {
	SlotIndex     int    `json:"slotIndex"`
	OccupancyType int    `json:"occupancyType"` // 0 - свободен, 1 - удержан, 2 - забронирован
	OfferID       *int64 `json:"offerId,omitempty"`
}

// DayResponse сетка одной календарной даты
type DayResponse struct {
	Date  string             `json:"date"` // "2025-10-15"
	Slots []SlotCellResponse `json:"slots"`
}

// Response модель ответа с окном сетки доступности
type Response struct {
	TutorID int64         `json:"tutorId"`
	Days    []DayResponse `json:"days"`
}
