package patterns

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// PatternRepository интерфейс репозитория шаблонов доступности
type PatternRepository interface {
	Create(ctx context.Context, pattern *domain.WeeklyAvailabilityPattern) (*domain.WeeklyAvailabilityPattern, error)
	GetAllByTutor(ctx context.Context, tutorID int64) ([]*domain.WeeklyAvailabilityPattern, error)
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
