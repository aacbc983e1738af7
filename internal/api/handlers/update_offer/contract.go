package update_offer

import (
	"context"

	updateOffer "github.com/m04kA/SMC-TutoringService/internal/usecase/update_offer"
)

type UpdateOfferUseCase interface {
	Execute(ctx context.Context, req *updateOffer.Request) (*updateOffer.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
