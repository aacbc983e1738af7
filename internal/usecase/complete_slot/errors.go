package complete_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот бронирования не найден
	ErrSlotNotFound = errors.New("complete_slot: booked slot not found")

	// ErrAccessDenied возвращается, когда слот завершает не репетитор бронирования
	ErrAccessDenied = errors.New("complete_slot: access denied")

	// ErrSlotNotPending возвращается, когда слот не находится в статусе pending
	ErrSlotNotPending = errors.New("complete_slot: slot is not pending")

	// ErrOutOfOrder возвращается при попытке завершить слот раньше
	// более раннего незавершённого слота того же бронирования
	ErrOutOfOrder = errors.New("complete_slot: earlier slots must be completed first")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_slot: internal error")
)
