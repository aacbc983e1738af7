package raise_dispute

import (
	"context"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateFundStatus(ctx context.Context, fundID int64, status domain.HeldFundStatus) error
}

// DisputeRepository интерфейс репозитория споров
type DisputeRepository interface {
	Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error)
	HasOpenBySlotID(ctx context.Context, slotID int64) (bool, error)
	ListOpenByBookingID(ctx context.Context, bookingID int64) ([]*domain.Dispute, error)
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
