package finalize_slot

import "context"

type BookingsService interface {
	FinalizeSlot(ctx context.Context, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
