package create_reschedule

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	createReschedule "github.com/m04kA/SMC-TutoringService/internal/usecase/create_reschedule"
)

// CreateRescheduleRequest HTTP request model
// Целевая ячейка задаётся в хранимой (UTC+0) сетке
type CreateRescheduleRequest struct {
	Reason       string `json:"reason"`
	NewDate      string `json:"newDate"` // "2025-10-15"
	NewSlotIndex int    `json:"newSlotIndex"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRescheduleRequest) ToUseCaseRequest(slotID, userID int64) (*createReschedule.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	return &createReschedule.Request{
		SlotID:       slotID,
		UserID:       userID,
		Reason:       r.Reason,
		NewDate:      newDate,
		NewSlotIndex: domain.SlotIndex(r.NewSlotIndex),
	}, nil
}
