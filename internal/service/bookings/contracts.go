package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateSlotStatus(ctx context.Context, slotID int64, status domain.SlotStatus) error
	Cancel(ctx context.Context, id int64, reason string, cancelledAt time.Time) error
	UpdateFundStatus(ctx context.Context, fundID int64, status domain.HeldFundStatus) error
}

// DisputeRepository интерфейс репозитория споров
type DisputeRepository interface {
	ListOpenByBookingID(ctx context.Context, bookingID int64) ([]*domain.Dispute, error)
}

// PaymentServiceClient интерфейс клиента для PaymentService
type PaymentServiceClient interface {
	RefundToLearner(ctx context.Context, heldFundID int64, reference string) error
	ReleaseToTutor(ctx context.Context, heldFundID int64, reference string) error
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
