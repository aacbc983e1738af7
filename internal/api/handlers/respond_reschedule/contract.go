package respond_reschedule

import (
	"context"

	"github.com/m04kA/SMC-TutoringService/internal/service/reschedules"
)

type ReschedulesService interface {
	Respond(ctx context.Context, requestID int64, req *reschedules.RespondRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
