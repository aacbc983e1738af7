package domain

// BookingsFilter параметры выборки списка бронирований
// LearnerID и TutorID опциональны; заполняется тот, под чьей ролью
// выполняется запрос
type BookingsFilter struct {
	LearnerID *int64
	TutorID   *int64
	Status    *BookingStatus

	PageIndex int64
	PageSize  int64
}

// Offset возвращает смещение выборки для пагинации
func (f BookingsFilter) Offset() uint64 {
	if f.PageIndex <= 0 {
		return 0
	}
	return uint64(f.PageIndex * f.PageSize)
}
