package patterns

import "errors"

var (
	// ErrPatternNotFound возвращается, когда у репетитора нет ни одного шаблона
	ErrPatternNotFound = errors.New("weekly pattern not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
