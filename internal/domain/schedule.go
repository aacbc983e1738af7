package domain

import "time"

// SlotCellStatus статус ячейки в сетке доступности
type SlotCellStatus string

const (
	CellAvailable   SlotCellStatus = "available"
	CellOnHold      SlotCellStatus = "onhold"
	CellBooked      SlotCellStatus = "booked"
	CellUnavailable SlotCellStatus = "unavailable"
)

// OccupancyKind тип занятости слота существующей записью
type OccupancyKind string

const (
	OccupancyBooked OccupancyKind = "booked"
	OccupancyOnHold OccupancyKind = "onhold"
)

// OccupiedSlot занятый слот из существующих записей:
// активный BookedSlot, слот неистёкшего оффера или целевой слот
// неотвеченного запроса переноса (оба последних - onhold)
type OccupiedSlot struct {
	Date      time.Time
	SlotIndex SlotIndex
	Kind      OccupancyKind
	OfferID   *int64 // заполнен для слотов офферов
}

// SlotCell одна ячейка сетки доступности
type SlotCell struct {
	Status  SlotCellStatus
	OfferID *int64 // оффер, удерживающий ячейку (для onhold)
}

// DaySchedule производная сетка на одну календарную дату: 48 ячеек
type DaySchedule struct {
	Date  time.Time
	Cells [SlotsPerDay]SlotCell
}

// BuildScheduleWindow строит сетку доступности на диапазон дат [startDate, endDate]
//
// Правила для каждой ячейки (в порядке приоритета):
//  1. активный BookedSlot -> booked; бронь всегда перекрывает недоступность
//     по шаблону, так как могла быть сделана при ранее действовавшем шаблоне
//  2. прошедший слот -> unavailable
//  3. слот оффера или целевой слот переноса -> onhold
//  4. слот открыт активным шаблоном недели -> available
//  5. иначе -> unavailable
//
// Шаблон разрешается отдельно для каждой недели диапазона
func BuildScheduleWindow(
	patterns []*WeeklyAvailabilityPattern,
	startDate, endDate time.Time,
	occupied []OccupiedSlot,
	now time.Time,
) ([]DaySchedule, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return nil, ErrInvalidTimestamp
	}

	start := dateOnly(startDate)
	end := dateOnly(endDate)
	if end.Before(start) {
		return nil, ErrInvalidTimestamp
	}

	// Индексируем занятость по (дата, слот)
	type cellKey struct {
		date string
		slot SlotIndex
	}
	occupancy := make(map[cellKey]OccupiedSlot, len(occupied))
	for _, o := range occupied {
		if !o.SlotIndex.Valid() {
			return nil, ErrInvalidTimestamp
		}
		key := cellKey{date: dateOnly(o.Date).Format(DateFormat), slot: o.SlotIndex}
		// booked перекрывает onhold при конфликте записей
		if existing, ok := occupancy[key]; ok && existing.Kind == OccupancyBooked {
			continue
		}
		occupancy[key] = o
	}

	days := make([]DaySchedule, 0, int(end.Sub(start).Hours())/24+1)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		pattern := ResolvePattern(patterns, WeekStart(date))

		day := DaySchedule{Date: date}
		for i := 0; i < SlotsPerDay; i++ {
			index := SlotIndex(i)
			key := cellKey{date: date.Format(DateFormat), slot: index}
			occ, isOccupied := occupancy[key]

			switch {
			case isOccupied && occ.Kind == OccupancyBooked:
				day.Cells[i] = SlotCell{Status: CellBooked}
			case IsPastSlot(date, index, now):
				day.Cells[i] = SlotCell{Status: CellUnavailable}
			case isOccupied:
				day.Cells[i] = SlotCell{Status: CellOnHold, OfferID: occ.OfferID}
			case pattern != nil && pattern.Allows(date.Weekday(), index):
				day.Cells[i] = SlotCell{Status: CellAvailable}
			default:
				day.Cells[i] = SlotCell{Status: CellUnavailable}
			}
		}

		days = append(days, day)
	}

	return days, nil
}

// IsPastSlot проверяет, что слот уже прошёл: дата раньше сегодняшней,
// либо сегодня и конец слота (начало + 30 минут) не позже now
func IsPastSlot(date time.Time, index SlotIndex, now time.Time) bool {
	d := dateOnly(date)
	today := dateOnly(now)

	if d.Before(today) {
		return true
	}
	if !isSameDay(d, today) {
		return false
	}
	return !SlotEndUTC(d, index).After(now)
}

// CellAt возвращает статус ячейки (date, index) в построенном окне
// Для дат вне окна возвращает unavailable
func CellAt(days []DaySchedule, date time.Time, index SlotIndex) SlotCell {
	if !index.Valid() {
		return SlotCell{Status: CellUnavailable}
	}
	d := dateOnly(date)
	for i := range days {
		if isSameDay(days[i].Date, d) {
			return days[i].Cells[index]
		}
	}
	return SlotCell{Status: CellUnavailable}
}
