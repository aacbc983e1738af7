package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToDisplayTime_Offset(t *testing.T) {
	// Слот 0 (00:00 UTC) отображается как 07:00 той же даты
	dt, err := ToDisplayTime(date(2025, 10, 15), 0)
	require.NoError(t, err)

	assert.Equal(t, date(2025, 10, 15), dt.Date)
	assert.Equal(t, SlotIndex(14), dt.SlotIndex)
	assert.Equal(t, "07:00", dt.StartTime.String())
	assert.Equal(t, "07:30", dt.EndTime.String())
}

func TestToDisplayTime_MidnightRollover(t *testing.T) {
	// Поздний вечер UTC уезжает на следующую отображаемую дату:
	// слот 34 (17:00 UTC) -> 00:00 следующего дня в UTC+7
	dt, err := ToDisplayTime(date(2025, 10, 15), 34)
	require.NoError(t, err)

	assert.Equal(t, date(2025, 10, 16), dt.Date)
	assert.Equal(t, SlotIndex(0), dt.SlotIndex)
	assert.Equal(t, "00:00", dt.StartTime.String())
	assert.Equal(t, "00:30", dt.EndTime.String())
}

func TestToDisplayTime_LastSlotEndsAtMidnight(t *testing.T) {
	// Слот 33 (16:30 UTC) -> 23:30 отображаемого времени, конец 00:00
	dt, err := ToDisplayTime(date(2025, 10, 15), 33)
	require.NoError(t, err)

	assert.Equal(t, date(2025, 10, 15), dt.Date)
	assert.Equal(t, "23:30", dt.StartTime.String())
	assert.Equal(t, "00:00", dt.EndTime.String())
}

func TestToDisplayTime_InvalidInput(t *testing.T) {
	_, err := ToDisplayTime(time.Time{}, 10)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = ToDisplayTime(date(2025, 10, 15), -1)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = ToDisplayTime(date(2025, 10, 15), 48)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestRoundTrip_AllSlots(t *testing.T) {
	// Ключевое свойство: ToStorageSlot(ToDisplayTime(d, i)) == (d, i)
	// для всех валидных входов
	dates := []time.Time{
		date(2025, 10, 15),
		date(2025, 12, 31), // граница года
		date(2024, 2, 29),  // високосный день
		date(2025, 3, 31),  // граница месяца
	}

	for _, d := range dates {
		for i := 0; i < SlotsPerDay; i++ {
			dt, err := ToDisplayTime(d, SlotIndex(i))
			require.NoError(t, err)

			backDate, backIndex, err := ToStorageSlot(dt.Date, dt.SlotIndex)
			require.NoError(t, err)

			assert.Equal(t, d, backDate, "date mismatch for slot %d of %s", i, d.Format(DateFormat))
			assert.Equal(t, SlotIndex(i), backIndex, "index mismatch for slot %d of %s", i, d.Format(DateFormat))
		}
	}
}

func TestToStorageSlotForWeek_DayRollover(t *testing.T) {
	// Понедельник 2025-10-13; отображаемый слот 0 понедельника - это
	// поздний вечер хранимого воскресенья
	monday := date(2025, 10, 13)

	storageDate, storageIndex, err := ToStorageSlotForWeek(monday, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, date(2025, 10, 12), storageDate)
	assert.Equal(t, SlotIndex(34), storageIndex)

	// Отображаемый слот 14 понедельника (07:00) - хранимый слот 0 понедельника
	storageDate, storageIndex, err = ToStorageSlotForWeek(monday, 0, 14)
	require.NoError(t, err)

	assert.Equal(t, monday, storageDate)
	assert.Equal(t, SlotIndex(0), storageIndex)
}

func TestToStorageSlotForWeek_InvalidDay(t *testing.T) {
	monday := date(2025, 10, 13)

	_, _, err := ToStorageSlotForWeek(monday, 7, 0)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, _, err = ToStorageSlotForWeek(monday, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestWeekStart(t *testing.T) {
	// 2025-10-15 - среда; понедельник той недели - 2025-10-13
	assert.Equal(t, date(2025, 10, 13), WeekStart(date(2025, 10, 15)))
	// Понедельник остаётся понедельником
	assert.Equal(t, date(2025, 10, 13), WeekStart(date(2025, 10, 13)))
	// Воскресенье относится к предыдущему понедельнику
	assert.Equal(t, date(2025, 10, 13), WeekStart(date(2025, 10, 19)))
}

func TestSlotStartUTC(t *testing.T) {
	start := SlotStartUTC(date(2025, 10, 15), 21)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC), start)

	end := SlotEndUTC(date(2025, 10, 15), 21)
	assert.Equal(t, time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC), end)
}
