package create_reschedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// PatternRepository интерфейс репозитория шаблонов доступности
type PatternRepository interface {
	GetAllByTutor(ctx context.Context, tutorID int64) ([]*domain.WeeklyAvailabilityPattern, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error)
	GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to time.Time) ([]*domain.BookedSlot, error)
}

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]domain.OfferedSlot, error)
}

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error)
	GetPendingBySlotID(ctx context.Context, slotID int64) (*domain.RescheduleRequest, error)
	GetPendingTargetsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]*domain.RescheduleRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RescheduleStatus, respondedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
