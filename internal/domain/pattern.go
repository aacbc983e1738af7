package domain

import (
	"sort"
	"time"
)

// WeeklyAvailabilityPattern версионированный шаблон недельной доступности репетитора
// Для каждого дня недели хранится множество открытых слотов (индексы UTC+0)
// Шаблон действует с даты AppliedFrom; для любой календарной недели активен
// ровно один шаблон
type WeeklyAvailabilityPattern struct {
	ID          int64
	TutorID     int64
	AppliedFrom time.Time
	Days        map[time.Weekday][]SlotIndex
	CreatedAt   time.Time
}

// Allows проверяет, открыт ли слот index в день недели weekday
func (p *WeeklyAvailabilityPattern) Allows(weekday time.Weekday, index SlotIndex) bool {
	for _, s := range p.Days[weekday] {
		if s == index {
			return true
		}
	}
	return false
}

// ResolvePattern выбирает активный шаблон для недели, начинающейся с weekStartMonday
//
// Алгоритм: шаблоны сортируются по AppliedFrom по убыванию; берётся первый,
// чей AppliedFrom <= weekStartMonday. Если таких нет (неделя раньше всех
// шаблонов) - возвращается самый ранний шаблон. Для пустого списка - nil.
//
// При одинаковом AppliedFrom побеждает шаблон с большим ID (созданный позже)
func ResolvePattern(patterns []*WeeklyAvailabilityPattern, weekStartMonday time.Time) *WeeklyAvailabilityPattern {
	if len(patterns) == 0 {
		return nil
	}

	sorted := make([]*WeeklyAvailabilityPattern, len(patterns))
	copy(sorted, patterns)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].AppliedFrom.Equal(sorted[j].AppliedFrom) {
			return sorted[i].AppliedFrom.After(sorted[j].AppliedFrom)
		}
		return sorted[i].ID > sorted[j].ID
	})

	monday := dateOnly(weekStartMonday)
	for _, p := range sorted {
		if !dateOnly(p.AppliedFrom).After(monday) {
			return p
		}
	}

	// Неделя раньше всех шаблонов: fallback на самый ранний
	// Благодаря вторичной сортировке по ID первый элемент группы
	// с минимальным AppliedFrom - созданный позже
	earliest := dateOnly(sorted[len(sorted)-1].AppliedFrom)
	for _, p := range sorted {
		if dateOnly(p.AppliedFrom).Equal(earliest) {
			return p
		}
	}

	return sorted[len(sorted)-1]
}
