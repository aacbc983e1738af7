package domain

import "errors"

var (
	// ErrInvalidTimestamp возвращается при некорректной дате или индексе слота
	// Конвертация времени никогда молча не возвращает неверный слот
	ErrInvalidTimestamp = errors.New("domain: invalid timestamp")

	// ErrNoSlotsSelected возвращается при попытке собрать оффер без выбранных слотов
	ErrNoSlotsSelected = errors.New("domain: no slots selected")

	// ErrOutOfOrderCompletion возвращается при попытке завершить слот
	// раньше более раннего pending-слота того же бронирования
	ErrOutOfOrderCompletion = errors.New("domain: slots must be completed in chronological order")

	// ErrBookingAlreadyTerminal возвращается при мутации завершённого
	// или отменённого бронирования
	ErrBookingAlreadyTerminal = errors.New("domain: booking is already in a terminal state")

	// ErrEmptyReasonRequired возвращается, когда обязательная причина не указана
	ErrEmptyReasonRequired = errors.New("domain: non-empty reason is required")

	// ErrSlotNotPending возвращается, когда операция требует слот в статусе pending
	ErrSlotNotPending = errors.New("domain: booked slot is not pending")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
