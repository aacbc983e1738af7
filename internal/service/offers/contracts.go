package offers

import (
	"context"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
