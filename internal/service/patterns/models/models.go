package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

var (
	// ErrInvalidWeekday возвращается при неизвестном названии дня недели
	ErrInvalidWeekday = errors.New("invalid weekday name")

	// ErrInvalidSlotIndex возвращается при индексе слота вне сетки [0, 47]
	ErrInvalidSlotIndex = errors.New("invalid slot index")

	// ErrInvalidDate возвращается при некорректной дате начала действия
	ErrInvalidDate = errors.New("invalid applied_from date")
)

// Названия дней недели в запросах и ответах
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func weekdayName(d time.Weekday) string {
	for name, weekday := range weekdayNames {
		if weekday == d {
			return name
		}
	}
	return ""
}

// Request модели

// PutPatternRequest запрос на публикацию новой версии шаблона
// Слоты указываются хранимыми индексами (UTC+0)
type PutPatternRequest struct {
	AppliedFrom string           `json:"appliedFrom"` // "2025-10-15"
	Days        map[string][]int `json:"days"`        // "monday" -> [18, 19, 20]
}

// ToDomain конвертирует запрос в domain модель с валидацией
func (r *PutPatternRequest) ToDomain(tutorID int64) (*domain.WeeklyAvailabilityPattern, error) {
	appliedFrom, err := time.Parse(domain.DateFormat, r.AppliedFrom)
	if err != nil {
		return nil, ErrInvalidDate
	}

	days := make(map[time.Weekday][]domain.SlotIndex, len(r.Days))
	for name, indexes := range r.Days {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, ErrInvalidWeekday
		}

		slots := make([]domain.SlotIndex, 0, len(indexes))
		seen := make(map[int]bool, len(indexes))
		for _, raw := range indexes {
			index := domain.SlotIndex(raw)
			if !index.Valid() {
				return nil, ErrInvalidSlotIndex
			}
			if seen[raw] {
				continue
			}
			seen[raw] = true
			slots = append(slots, index)
		}

		days[weekday] = slots
	}

	return &domain.WeeklyAvailabilityPattern{
		TutorID:     tutorID,
		AppliedFrom: appliedFrom,
		Days:        days,
	}, nil
}

// Response модели

// PatternResponse активная версия шаблона доступности
type PatternResponse struct {
	ID          int64            `json:"id"`
	TutorID     int64            `json:"tutorId"`
	AppliedFrom string           `json:"appliedFrom"`
	Days        map[string][]int `json:"days"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// FromDomainPattern конвертирует domain модель в DTO
func FromDomainPattern(p *domain.WeeklyAvailabilityPattern) *PatternResponse {
	if p == nil {
		return nil
	}

	days := make(map[string][]int, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		indexes := make([]int, 0, len(p.Days[weekday]))
		for _, index := range p.Days[weekday] {
			indexes = append(indexes, int(index))
		}
		days[weekdayName(weekday)] = indexes
	}

	return &PatternResponse{
		ID:          p.ID,
		TutorID:     p.TutorID,
		AppliedFrom: p.AppliedFrom.Format(domain.DateFormat),
		Days:        days,
		CreatedAt:   p.CreatedAt,
	}
}
