package delete_offer

import "context"

type OffersService interface {
	Delete(ctx context.Context, offerID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
