package get_weekly_pattern

import (
	"context"

	"github.com/m04kA/SMC-TutoringService/internal/service/patterns/models"
)

type PatternsService interface {
	Get(ctx context.Context, tutorID int64) (*models.PatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
