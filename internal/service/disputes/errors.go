package disputes

import "errors"

var (
	// ErrDisputeNotFound возвращается, когда спор не найден
	ErrDisputeNotFound = errors.New("dispute not found")

	// ErrAlreadyResolved возвращается при повторной резолюции спора
	ErrAlreadyResolved = errors.New("dispute already resolved")

	// ErrInvalidOutcome возвращается при неизвестном исходе спора
	ErrInvalidOutcome = errors.New("invalid dispute outcome")

	// ErrPaymentUnavailable возвращается, когда PaymentService недоступен
	// и денежную часть резолюции выполнить нельзя
	ErrPaymentUnavailable = errors.New("payment service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
