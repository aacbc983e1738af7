package create_offer

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	createOffer "github.com/m04kA/SMC-TutoringService/internal/usecase/create_offer"
)

// SlotSelectionRequest одна выбранная ячейка недельной сетки
type SlotSelectionRequest struct {
	WeekStart string `json:"weekStart"` // "2025-10-13", понедельник недели
	DayInWeek int    `json:"dayInWeek"` // 0 = понедельник ... 6 = воскресенье
	SlotIndex int    `json:"slotIndex"`
}

// CreateOfferRequest HTTP request model
type CreateOfferRequest struct {
	LearnerID  int64                  `json:"learnerId"`
	LessonID   int64                  `json:"lessonId"`
	Selections []SlotSelectionRequest `json:"selections"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOfferRequest) ToUseCaseRequest(tutorID int64) (*createOffer.Request, error) {
	selections := make([]createOffer.SlotSelection, 0, len(r.Selections))
	for _, sel := range r.Selections {
		weekStart, err := time.Parse(domain.DateFormat, sel.WeekStart)
		if err != nil {
			return nil, err
		}
		selections = append(selections, createOffer.SlotSelection{
			WeekStart: weekStart,
			DayInWeek: sel.DayInWeek,
			SlotIndex: domain.SlotIndex(sel.SlotIndex),
		})
	}

	return &createOffer.Request{
		TutorID:    tutorID,
		LearnerID:  r.LearnerID,
		LessonID:   r.LessonID,
		Selections: selections,
	}, nil
}
