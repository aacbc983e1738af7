package get_schedule_window

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_schedule_window: invalid input data")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("get_schedule_window: invalid date range")

	// ErrRangeTooWide возвращается, когда запрошенное окно шире допустимого
	ErrRangeTooWide = errors.New("get_schedule_window: date range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_schedule_window: internal error")
)
