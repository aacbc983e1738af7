package update_offer

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	updateOffer "github.com/m04kA/SMC-TutoringService/internal/usecase/update_offer"
)

// SlotSelectionRequest одна выбранная ячейка недельной сетки
type SlotSelectionRequest struct {
	WeekStart string `json:"weekStart"` // "2025-10-13", понедельник недели
	DayInWeek int    `json:"dayInWeek"` // 0 = понедельник ... 6 = воскресенье
	SlotIndex int    `json:"slotIndex"`
}

// UpdateOfferRequest HTTP request model
// Selections - итоговый набор слотов оффера, заменяет прежний целиком
type UpdateOfferRequest struct {
	Selections []SlotSelectionRequest `json:"selections"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateOfferRequest) ToUseCaseRequest(offerID, tutorID int64) (*updateOffer.Request, error) {
	selections := make([]updateOffer.SlotSelection, 0, len(r.Selections))
	for _, sel := range r.Selections {
		weekStart, err := time.Parse(domain.DateFormat, sel.WeekStart)
		if err != nil {
			return nil, err
		}
		selections = append(selections, updateOffer.SlotSelection{
			WeekStart: weekStart,
			DayInWeek: sel.DayInWeek,
			SlotIndex: domain.SlotIndex(sel.SlotIndex),
		})
	}

	return &updateOffer.Request{
		OfferID:    offerID,
		TutorID:    tutorID,
		Selections: selections,
	}, nil
}
