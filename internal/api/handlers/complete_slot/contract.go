package complete_slot

import (
	"context"

	completeSlot "github.com/m04kA/SMC-TutoringService/internal/usecase/complete_slot"
)

type CompleteSlotUseCase interface {
	Execute(ctx context.Context, req *completeSlot.Request) (*completeSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
