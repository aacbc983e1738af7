package create_reschedule

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len([]rune(reason)) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if !req.NewSlotIndex.Valid() {
		return fmt.Errorf("%w: newSlotIndex must be in [0, 47]", ErrInvalidInput)
	}

	return nil
}
