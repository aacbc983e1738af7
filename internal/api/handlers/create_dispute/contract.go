package create_dispute

import (
	"context"

	raiseDispute "github.com/m04kA/SMC-TutoringService/internal/usecase/raise_dispute"
)

type RaiseDisputeUseCase interface {
	Execute(ctx context.Context, req *raiseDispute.Request) (*raiseDispute.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
