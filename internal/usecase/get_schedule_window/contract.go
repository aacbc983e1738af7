package get_schedule_window

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
	GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to time.Time) ([]*domain.BookedSlot, error)
}

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]domain.OfferedSlot, error)
}

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	GetPendingTargetsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]*domain.RescheduleRequest, error)
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
