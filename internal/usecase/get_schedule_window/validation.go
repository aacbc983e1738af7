package get_schedule_window

import (
	"fmt"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidRange
	}

	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > domain.MaxScheduleWindowDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, domain.MaxScheduleWindowDays)
	}

	return nil
}
