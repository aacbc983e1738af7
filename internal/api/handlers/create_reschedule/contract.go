package create_reschedule

import (
	"context"

	createReschedule "github.com/m04kA/SMC-TutoringService/internal/usecase/create_reschedule"
)

type CreateRescheduleUseCase interface {
	Execute(ctx context.Context, req *createReschedule.Request) (*createReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
