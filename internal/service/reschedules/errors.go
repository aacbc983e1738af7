package reschedules

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("reschedule request not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyResponded возвращается при повторном ответе на запрос
	ErrAlreadyResponded = errors.New("reschedule request already responded")

	// ErrRequestExpired возвращается, когда окно ответа на запрос истекло
	// Истёкший запрос считается отклонённым
	ErrRequestExpired = errors.New("reschedule request expired")

	// ErrTargetSlotUnavailable возвращается, когда целевой слот переноса
	// занят к моменту акцепта
	ErrTargetSlotUnavailable = errors.New("target slot is no longer available")

	// ErrSlotNotPending возвращается, когда исходное занятие уже не pending
	ErrSlotNotPending = errors.New("booked slot is not pending")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
