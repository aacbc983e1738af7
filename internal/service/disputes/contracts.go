package disputes

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// DisputeRepository интерфейс репозитория споров
type DisputeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Dispute, error)
	Resolve(ctx context.Context, id int64, status domain.DisputeStatus, resolution string, resolvedAt time.Time) error
	ListOpenByBookingID(ctx context.Context, bookingID int64) ([]*domain.Dispute, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error)
	UpdateSlotStatus(ctx context.Context, slotID int64, status domain.SlotStatus) error
	UpdateFundStatus(ctx context.Context, fundID int64, status domain.HeldFundStatus) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// PaymentServiceClient интерфейс клиента для PaymentService
type PaymentServiceClient interface {
	RefundToLearner(ctx context.Context, heldFundID int64, reference string) error
	ReturnToTutorAccount(ctx context.Context, heldFundID int64, reference string) error
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
