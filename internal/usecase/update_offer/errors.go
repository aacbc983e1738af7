package update_offer

import "errors"

var (
	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("update_offer: offer not found")

	// ErrOfferExpired возвращается при попытке обновить истёкший оффер
	ErrOfferExpired = errors.New("update_offer: offer has expired")

	// ErrAccessDenied возвращается, когда оффер принадлежит другому репетитору
	ErrAccessDenied = errors.New("update_offer: access denied")

	// ErrNoSlotsSelected возвращается при попытке сохранить оффер без слотов
	ErrNoSlotsSelected = errors.New("update_offer: no slots selected")

	// ErrSlotUnavailable возвращается, когда выбранная ячейка недоступна
	// и не удерживается этим же оффером
	ErrSlotUnavailable = errors.New("update_offer: selected slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_offer: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_offer: internal error")
)
