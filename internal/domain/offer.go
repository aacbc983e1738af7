package domain

import "time"

// Offer предложение репетитора конкретному ученику по конкретному уроку
// Слоты оффера удерживаются в сетке как onhold до акцепта или истечения
type Offer struct {
	ID              int64
	TutorID         int64
	LearnerID       int64
	LessonID        int64
	PricePerSlot    float64
	TotalPrice      float64
	DurationMinutes int
	Slots           []OfferedSlot
	ExpiresAt       time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfferedSlot один предложенный слот
// SlotDateTime хранится в UTC+0; SlotIndex - хранимый индекс
type OfferedSlot struct {
	ID           int64
	OfferID      int64
	SlotDateTime time.Time
	SlotIndex    SlotIndex
}

// IsExpired проверяет, истёк ли оффер к моменту now
// Признак всегда производный от ExpiresAt, отдельно не хранится
func (o *Offer) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// OfferExpiry возвращает момент истечения оффера, созданного в now
func OfferExpiry(now time.Time) time.Time {
	return now.Add(OfferExpiryHours * time.Hour)
}

// DiffOfferedSlots сравнивает старый и новый наборы слотов оффера
// по моменту начала. Используется только для пользовательской сводки
// изменений при обновлении - валидация от диффа не зависит
func DiffOfferedSlots(old, updated []OfferedSlot) (added, removed []OfferedSlot) {
	oldSet := make(map[int64]OfferedSlot, len(old))
	for _, s := range old {
		oldSet[s.SlotDateTime.Unix()] = s
	}
	newSet := make(map[int64]OfferedSlot, len(updated))
	for _, s := range updated {
		newSet[s.SlotDateTime.Unix()] = s
	}

	for key, s := range newSet {
		if _, ok := oldSet[key]; !ok {
			added = append(added, s)
		}
	}
	for key, s := range oldSet {
		if _, ok := newSet[key]; !ok {
			removed = append(removed, s)
		}
	}

	return added, removed
}
