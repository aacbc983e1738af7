package offers

import "errors"

var (
	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("offer not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
