package resolve_dispute

import (
	"context"

	"github.com/m04kA/SMC-TutoringService/internal/service/disputes"
)

type DisputesService interface {
	Resolve(ctx context.Context, disputeID int64, req *disputes.ResolveRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
