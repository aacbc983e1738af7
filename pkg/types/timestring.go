package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat возвращается при некорректном формате времени
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// TimeString время в формате "HH:MM" без даты
// Используется для отображаемого времени слотов и на границе API
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
// Значение нормализуется по модулю суток, поэтому 24:00 превращается в 00:00
func NewTimeStringFromMinutes(minutes int) TimeString {
	const minutesPerDay = 24 * 60
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return ErrInvalidTimeFormat
	}

	hours, minutes, err := t.parse()
	if err != nil {
		return err
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return ErrInvalidTimeFormat
	}

	return nil
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	hours, minutes, err := t.parse()
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// AddMinutes возвращает время, сдвинутое на указанное число минут
// Переход через полночь нормализуется (23:30 + 30 минут = 00:00)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(base + minutes), nil
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) parse() (int, int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	return hours, minutes, nil
}
