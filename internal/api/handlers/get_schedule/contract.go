package get_schedule

import (
	"context"

	getScheduleWindow "github.com/m04kA/SMC-TutoringService/internal/usecase/get_schedule_window"
)

type GetScheduleUseCase interface {
	Execute(ctx context.Context, req *getScheduleWindow.Request) (*getScheduleWindow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
