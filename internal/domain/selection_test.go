package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/pkg/ptr"
)

func TestCanSelect_OwnOnHoldSlot(t *testing.T) {
	onHoldCell := SlotCell{Status: CellOnHold, OfferID: ptr.Ptr(int64(42))}

	// Редактирование оффера #42: собственный onhold-слот можно выбрать заново
	editing := NewOfferSlotSelector(ptr.Ptr(int64(42)))
	assert.True(t, editing.CanSelect(onHoldCell, false))

	// Создание нового оффера #43: чужой onhold-слот выбрать нельзя
	creating := NewOfferSlotSelector(nil)
	assert.False(t, creating.CanSelect(onHoldCell, false))

	// Редактирование другого оффера: тоже нельзя
	other := NewOfferSlotSelector(ptr.Ptr(int64(43)))
	assert.False(t, other.CanSelect(onHoldCell, false))
}

func TestCanSelect_Statuses(t *testing.T) {
	s := NewOfferSlotSelector(nil)

	assert.True(t, s.CanSelect(SlotCell{Status: CellAvailable}, false))
	assert.False(t, s.CanSelect(SlotCell{Status: CellBooked}, false))
	assert.False(t, s.CanSelect(SlotCell{Status: CellUnavailable}, false))

	// Прошедший слот не выбирается независимо от статуса
	assert.False(t, s.CanSelect(SlotCell{Status: CellAvailable}, true))
}

func TestToggle_AddAndRemove(t *testing.T) {
	s := NewOfferSlotSelector(nil)
	monday := date(2025, 10, 13)

	require.NoError(t, s.Toggle(monday, 2, 20))
	assert.True(t, s.IsSelected(monday, 2, 20))
	assert.Equal(t, 1, s.Count())

	// Повторный toggle убирает выбор
	require.NoError(t, s.Toggle(monday, 2, 20))
	assert.False(t, s.IsSelected(monday, 2, 20))
	assert.Equal(t, 0, s.Count())
}

func TestToggle_SelectionsSurviveWeekNavigation(t *testing.T) {
	// Оффер может охватывать несколько недель: выбор недели сохраняется
	// при переходе на другую неделю
	s := NewOfferSlotSelector(nil)
	week1 := date(2025, 10, 13)
	week2 := date(2025, 10, 20)

	require.NoError(t, s.Toggle(week1, 0, 20))
	require.NoError(t, s.Toggle(week2, 3, 22))
	require.NoError(t, s.Toggle(week2, 4, 24))

	assert.True(t, s.IsSelected(week1, 0, 20))
	assert.True(t, s.IsSelected(week2, 3, 22))
	assert.Equal(t, 3, s.Count())
}

func TestFlatten_ChronologicalAndRecomputed(t *testing.T) {
	s := NewOfferSlotSelector(nil)
	week1 := date(2025, 10, 13)
	week2 := date(2025, 10, 20)

	// Добавляем в обратном хронологическом порядке
	require.NoError(t, s.Toggle(week2, 1, 20))
	require.NoError(t, s.Toggle(week1, 4, 30))
	require.NoError(t, s.Toggle(week1, 0, 16))

	flat, err := s.Flatten()
	require.NoError(t, err)
	require.Len(t, flat, 3)

	for i := 1; i < len(flat); i++ {
		assert.True(t, flat[i-1].SlotDateTime.Before(flat[i].SlotDateTime))
	}

	// SlotDateTime детерминированно пересчитан из координат ячейки
	for _, sel := range flat {
		storageDate, storageIndex, err := ToStorageSlotForWeek(sel.WeekStart, sel.DayInWeek, sel.SlotIndex)
		require.NoError(t, err)
		assert.Equal(t, SlotStartUTC(storageDate, storageIndex), sel.SlotDateTime)
	}
}

func TestFlatten_Empty(t *testing.T) {
	s := NewOfferSlotSelector(nil)

	_, err := s.Flatten()
	assert.ErrorIs(t, err, ErrNoSlotsSelected)
}

func TestToggle_InvalidCell(t *testing.T) {
	s := NewOfferSlotSelector(nil)

	err := s.Toggle(date(2025, 10, 13), 9, 20)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}
