package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается при попытке отменить бронирование
	// в конечном статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrEmptyReason возвращается, когда причина отмены не указана
	ErrEmptyReason = errors.New("cancellation reason is required")

	// ErrSlotNotFound возвращается, когда занятие не найдено
	ErrSlotNotFound = errors.New("booked slot not found")

	// ErrSlotNotFinalizable возвращается при попытке финализировать занятие
	// вне окна подтверждения
	ErrSlotNotFinalizable = errors.New("slot is not awaiting confirmation")

	// ErrSlotDisputed возвращается при попытке финализировать занятие
	// с открытым спором
	ErrSlotDisputed = errors.New("slot has an open dispute")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPaymentUnavailable возвращается, когда PaymentService недоступен
	// и возврат средств выполнить нельзя
	ErrPaymentUnavailable = errors.New("payment service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
