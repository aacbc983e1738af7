package reschedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RescheduleStatus, respondedAt time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error)
	GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to time.Time) ([]*domain.BookedSlot, error)
	UpdateSlotSchedule(ctx context.Context, slotID int64, bookedDate time.Time, slotIndex domain.SlotIndex) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
