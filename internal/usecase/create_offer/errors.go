package create_offer

import "errors"

var (
	// ErrLessonNotFound возвращается, когда урок не найден
	ErrLessonNotFound = errors.New("create_offer: lesson not found")

	// ErrLessonNotOwned возвращается, когда урок принадлежит другому репетитору
	ErrLessonNotOwned = errors.New("create_offer: lesson belongs to another tutor")

	// ErrLessonInactive возвращается, когда урок снят с публикации
	ErrLessonInactive = errors.New("create_offer: lesson is not active")

	// ErrNoSlotsSelected возвращается при попытке создать оффер без слотов
	ErrNoSlotsSelected = errors.New("create_offer: no slots selected")

	// ErrSlotUnavailable возвращается, когда выбранная ячейка недоступна:
	// занята, вне шаблона доступности или уже в прошлом
	ErrSlotUnavailable = errors.New("create_offer: selected slot is not available")

	// ErrLessonServiceUnavailable возвращается при недоступности LessonService
	ErrLessonServiceUnavailable = errors.New("create_offer: lesson service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_offer: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_offer: internal error")
)
