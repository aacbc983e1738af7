package update_offer

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OfferID <= 0 {
		return fmt.Errorf("%w: offerID must be positive", ErrInvalidInput)
	}

	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	if len(req.Selections) == 0 {
		return ErrNoSlotsSelected
	}

	for _, sel := range req.Selections {
		if sel.WeekStart.IsZero() {
			return fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
		}
		if sel.DayInWeek < 0 || sel.DayInWeek > 6 {
			return fmt.Errorf("%w: dayInWeek must be in [0, 6]", ErrInvalidInput)
		}
		if !sel.SlotIndex.Valid() {
			return fmt.Errorf("%w: slotIndex must be in [0, 47]", ErrInvalidInput)
		}
	}

	return nil
}

// selectionDateRange вычисляет диапазон хранимых дат, затронутых выбором
func selectionDateRange(selections []SlotSelection) (time.Time, time.Time, error) {
	var from, to time.Time

	for _, sel := range selections {
		storageDate, _, err := domain.ToStorageSlotForWeek(sel.WeekStart, sel.DayInWeek, sel.SlotIndex)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if from.IsZero() || storageDate.Before(from) {
			from = storageDate
		}
		if to.IsZero() || storageDate.After(to) {
			to = storageDate
		}
	}

	return from, to, nil
}

// storageIndexOf возвращает хранимый индекс слота по моменту его начала в UTC
func storageIndexOf(slotDateTime time.Time) domain.SlotIndex {
	t := slotDateTime.UTC()
	return domain.SlotIndex((t.Hour()*60 + t.Minute()) / domain.SlotDurationMinutes)
}
