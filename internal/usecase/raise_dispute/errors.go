package raise_dispute

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот бронирования не найден
	ErrSlotNotFound = errors.New("raise_dispute: booked slot not found")

	// ErrAccessDenied возвращается, когда спор открывает не ученик бронирования
	ErrAccessDenied = errors.New("raise_dispute: access denied")

	// ErrSlotNotDisputable возвращается, когда слот не находится
	// в окне подтверждения (awaiting_confirmation)
	ErrSlotNotDisputable = errors.New("raise_dispute: slot is not awaiting confirmation")

	// ErrDisputeAlreadyOpen возвращается, когда по слоту уже есть открытый спор
	ErrDisputeAlreadyOpen = errors.New("raise_dispute: open dispute already exists for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("raise_dispute: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("raise_dispute: internal error")
)
