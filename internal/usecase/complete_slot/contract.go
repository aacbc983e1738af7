package complete_slot

import (
	"context"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error)
	UpdateSlotStatus(ctx context.Context, slotID int64, status domain.SlotStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
