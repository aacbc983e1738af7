package domain

// Слотовая сетка: сутки делятся на 48 слотов по 30 минут,
// индексация от 00:00 хранимого часового пояса (UTC+0)
const (
	SlotsPerDay         = 48
	SlotDurationMinutes = 30
	MinutesPerDay       = 24 * 60
)

// Отображаемый часовой пояс фиксирован: UTC+7
const (
	DisplayOffsetHours = 7
	DisplayOffsetSlots = DisplayOffsetHours * 60 / SlotDurationMinutes
)

// Бизнес-окна
const (
	// OfferExpiryHours срок жизни неакцептованного оффера
	OfferExpiryHours = 48

	// RescheduleNoticeHours минимальный срок до начала слота,
	// за который можно запросить перенос
	RescheduleNoticeHours = 24

	// RescheduleResponseHours окно ответа на запрос переноса;
	// по истечении запрос считается отклонённым
	RescheduleResponseHours = 24

	// DisputeWindowHours окно после завершения слота, в течение которого
	// ученик может открыть спор (слот в статусе awaiting_confirmation)
	DisputeWindowHours = 24

	// FundReleaseDelayHours задержка автоматического перевода средств
	// репетитору после завершения слота; сам таймер живёт вне сервиса
	FundReleaseDelayHours = 72
)

// Форматы времени
const (
	DateFormat = "2006-01-02"
)

// Ограничения валидации
const (
	MaxReasonLength = 500
	MaxNoteLength   = 500

	// MaxScheduleWindowDays максимальная ширина запрашиваемого окна расписания
	MaxScheduleWindowDays = 56
)
