package domain

import (
	"sort"
	"time"
)

// SlotSelection один выбранный слот оффера
// Ячейка задаётся в отображаемой сетке (неделя, день, индекс UTC+7),
// SlotDateTime - вычисленный хранимый момент начала (UTC+0)
type SlotSelection struct {
	WeekStart    time.Time
	DayInWeek    int // 0 = понедельник ... 6 = воскресенье
	SlotIndex    SlotIndex
	SlotDateTime time.Time
}

// OfferSlotSelector состояние выбора слотов при создании или редактировании оффера
//
// Оффер может охватывать несколько недель, поэтому выбор хранится
// в карте по дате понедельника недели: выбор одной недели сохраняется
// при навигации на другую
type OfferSlotSelector struct {
	editingOfferID *int64
	weeks          map[string][]SlotSelection
}

// NewOfferSlotSelector создает селектор
// editingOfferID заполняется при редактировании существующего оффера
// и позволяет заново выбирать его собственные onhold-слоты
func NewOfferSlotSelector(editingOfferID *int64) *OfferSlotSelector {
	return &OfferSlotSelector{
		editingOfferID: editingOfferID,
		weeks:          make(map[string][]SlotSelection),
	}
}

// CanSelect проверяет, можно ли выбрать ячейку с данным статусом
//
// Выбирать можно свободные ячейки и ячейки, удерживаемые редактируемым
// оффером. Забронированные, недоступные и прошедшие ячейки не выбираются
func (s *OfferSlotSelector) CanSelect(cell SlotCell, isPast bool) bool {
	if isPast {
		return false
	}

	switch cell.Status {
	case CellAvailable:
		return true
	case CellOnHold:
		return s.editingOfferID != nil && cell.OfferID != nil && *cell.OfferID == *s.editingOfferID
	default:
		return false
	}
}

// Toggle добавляет ячейку в выбор или убирает её, если она уже выбрана
// Хранимый момент начала вычисляется сразу из (weekStart, dayInWeek, index)
func (s *OfferSlotSelector) Toggle(weekStart time.Time, dayInWeek int, index SlotIndex) error {
	storageDate, storageIndex, err := ToStorageSlotForWeek(weekStart, dayInWeek, index)
	if err != nil {
		return err
	}

	key := weekKey(weekStart)
	selections := s.weeks[key]

	for i, sel := range selections {
		if sel.DayInWeek == dayInWeek && sel.SlotIndex == index {
			s.weeks[key] = append(selections[:i], selections[i+1:]...)
			return nil
		}
	}

	s.weeks[key] = append(selections, SlotSelection{
		WeekStart:    dateOnly(weekStart),
		DayInWeek:    dayInWeek,
		SlotIndex:    index,
		SlotDateTime: SlotStartUTC(storageDate, storageIndex),
	})

	return nil
}

// IsSelected проверяет, выбрана ли ячейка
func (s *OfferSlotSelector) IsSelected(weekStart time.Time, dayInWeek int, index SlotIndex) bool {
	for _, sel := range s.weeks[weekKey(weekStart)] {
		if sel.DayInWeek == dayInWeek && sel.SlotIndex == index {
			return true
		}
	}
	return false
}

// Count возвращает общее число выбранных слотов по всем неделям
func (s *OfferSlotSelector) Count() int {
	total := 0
	for _, selections := range s.weeks {
		total += len(selections)
	}
	return total
}

// Flatten собирает выбор всех недель в один хронологический список
//
// SlotDateTime каждого элемента пересчитывается заново из
// (weekStart, dayInWeek, slotIndex), чтобы исключить расползание
// с устаревшими закэшированными значениями на границах недель
func (s *OfferSlotSelector) Flatten() ([]SlotSelection, error) {
	result := make([]SlotSelection, 0, s.Count())

	for _, selections := range s.weeks {
		for _, sel := range selections {
			storageDate, storageIndex, err := ToStorageSlotForWeek(sel.WeekStart, sel.DayInWeek, sel.SlotIndex)
			if err != nil {
				return nil, err
			}
			sel.SlotDateTime = SlotStartUTC(storageDate, storageIndex)
			result = append(result, sel)
		}
	}

	if len(result) == 0 {
		return nil, ErrNoSlotsSelected
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SlotDateTime.Before(result[j].SlotDateTime)
	})

	return result, nil
}

func weekKey(weekStart time.Time) string {
	return dateOnly(weekStart).Format(DateFormat)
}
