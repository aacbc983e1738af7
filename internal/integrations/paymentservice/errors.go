package paymentservice

import "errors"

var (
	// ErrFundNotFound возвращается, когда эскроу-запись не найдена в PaymentService
	ErrFundNotFound = errors.New("held fund not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceUnavailable возвращается при недоступности PaymentService
	// Денежные операции при этом не применяются; вызывающая сторона
	// откатывает транзакцию целиком
	ErrServiceUnavailable = errors.New("paymentservice unavailable")
)
