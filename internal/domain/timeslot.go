package domain

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/pkg/types"
)

// SlotIndex индекс 30-минутного слота внутри суток хранимого пояса (UTC+0)
// Допустимые значения: [0, 47]; слот i начинается в (i/2):(i%2*30)
type SlotIndex int

// Valid проверяет, что индекс попадает в сетку суток
func (s SlotIndex) Valid() bool {
	return s >= 0 && s < SlotsPerDay
}

// StartMinutes возвращает число минут с начала суток до начала слота
func (s SlotIndex) StartMinutes() int {
	return int(s) * SlotDurationMinutes
}

// StartClock возвращает (час, минута) начала слота
func (s SlotIndex) StartClock() (int, int) {
	return int(s) / 2, (int(s) % 2) * SlotDurationMinutes
}

// DisplayTime отображаемое (UTC+7) представление хранимого слота
type DisplayTime struct {
	Date      time.Time        // календарная дата в отображаемом поясе
	SlotIndex SlotIndex        // индекс слота в отображаемом поясе
	StartTime types.TimeString // "HH:MM" начала слота
	EndTime   types.TimeString // "HH:MM" конца слота (30 минут спустя)
}

// ToDisplayTime переводит хранимую пару (дата UTC, индекс) в отображаемое время
// Слот около полуночи может сместиться на соседнюю отображаемую дату
func ToDisplayTime(storageDate time.Time, index SlotIndex) (DisplayTime, error) {
	if storageDate.IsZero() || !index.Valid() {
		return DisplayTime{}, ErrInvalidTimestamp
	}

	displayIndex := index + DisplayOffsetSlots
	displayDate := dateOnly(storageDate)

	if displayIndex >= SlotsPerDay {
		displayIndex -= SlotsPerDay
		displayDate = displayDate.AddDate(0, 0, 1)
	}

	start := types.NewTimeStringFromMinutes(displayIndex.StartMinutes())
	end := types.NewTimeStringFromMinutes(displayIndex.StartMinutes() + SlotDurationMinutes)

	return DisplayTime{
		Date:      displayDate,
		SlotIndex: displayIndex,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// ToStorageSlot переводит отображаемую пару (дата, индекс) обратно в хранимую
// Обратная операция к ToDisplayTime: round-trip сохраняет исходные значения
func ToStorageSlot(displayDate time.Time, displayIndex SlotIndex) (time.Time, SlotIndex, error) {
	if displayDate.IsZero() || !displayIndex.Valid() {
		return time.Time{}, 0, ErrInvalidTimestamp
	}

	storageIndex := displayIndex - DisplayOffsetSlots
	storageDate := dateOnly(displayDate)

	if storageIndex < 0 {
		storageIndex += SlotsPerDay
		storageDate = storageDate.AddDate(0, 0, -1)
	}

	return storageDate, storageIndex, nil
}

// ToStorageSlotForWeek переводит выбранную в недельной сетке ячейку
// (день недели и индекс в отображаемом поясе) в хранимую пару
// dayInWeek: 0 = понедельник недели weekStartMonday, ..., 6 = воскресенье
func ToStorageSlotForWeek(weekStartMonday time.Time, dayInWeek int, displayIndex SlotIndex) (time.Time, SlotIndex, error) {
	if weekStartMonday.IsZero() || dayInWeek < 0 || dayInWeek > 6 {
		return time.Time{}, 0, ErrInvalidTimestamp
	}

	displayDate := dateOnly(weekStartMonday).AddDate(0, 0, dayInWeek)
	return ToStorageSlot(displayDate, displayIndex)
}

// SlotStartUTC возвращает момент начала слота как time.Time в UTC
func SlotStartUTC(storageDate time.Time, index SlotIndex) time.Time {
	d := dateOnly(storageDate)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(index.StartMinutes()) * time.Minute)
}

// SlotEndUTC возвращает момент конца слота (начало + 30 минут) в UTC
func SlotEndUTC(storageDate time.Time, index SlotIndex) time.Time {
	return SlotStartUTC(storageDate, index).Add(SlotDurationMinutes * time.Minute)
}

// WeekStart возвращает понедельник недели, в которую попадает дата
func WeekStart(date time.Time) time.Time {
	d := dateOnly(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateOnly обнуляет время, оставляя только календарную дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
