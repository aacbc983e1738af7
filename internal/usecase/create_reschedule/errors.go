package create_reschedule

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот бронирования не найден
	ErrSlotNotFound = errors.New("create_reschedule: booked slot not found")

	// ErrSlotNotPending возвращается, когда переносимый слот не в статусе pending
	ErrSlotNotPending = errors.New("create_reschedule: slot is not pending")

	// ErrAccessDenied возвращается, когда запрос подаёт не участник бронирования
	ErrAccessDenied = errors.New("create_reschedule: access denied")

	// ErrTooLateToReschedule возвращается, когда до начала занятия
	// осталось меньше 24 часов
	ErrTooLateToReschedule = errors.New("create_reschedule: less than 24 hours before the lesson")

	// ErrAlreadyRequested возвращается, когда по слоту уже есть
	// неотвеченный запрос на перенос
	ErrAlreadyRequested = errors.New("create_reschedule: pending reschedule request already exists")

	// ErrTargetSlotUnavailable возвращается, когда целевая ячейка занята,
	// недоступна или находится в прошлом
	ErrTargetSlotUnavailable = errors.New("create_reschedule: target slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reschedule: internal error")
)
