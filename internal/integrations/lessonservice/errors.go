package lessonservice

import "errors"

var (
	// ErrLessonNotFound возвращается, когда урок не найден
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("lessonservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("lessonservice client: invalid response")

	// ErrServiceUnavailable возвращается при недоступности LessonService
	// Оборачивает исходную причину (timeout, 5xx); ретраи - зона
	// ответственности транспортного уровня, клиент не повторяет запросы
	ErrServiceUnavailable = errors.New("lessonservice unavailable")
)
