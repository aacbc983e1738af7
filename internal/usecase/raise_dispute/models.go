package raise_dispute

import (
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// Request модель запроса на открытие спора
type Request struct {
	SlotID    int64  // ID оспариваемого слота
	LearnerID int64  // ID ученика бронирования
	Reason    string // причина спора
}

// Response модель ответа с открытым спором
type Response struct {
	ID            int64     `json:"id"`
	CaseNumber    string    `json:"caseNumber"`
	BookedSlotID  int64     `json:"bookedSlotId"`
	Status        string    `json:"status"`
	BookingStatus string    `json:"bookingStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toResponse(dispute *domain.Dispute, bookingStatus domain.BookingStatus) *Response {
	return &Response{
		ID:            dispute.ID,
		CaseNumber:    dispute.CaseNumber,
		BookedSlotID:  dispute.BookedSlotID,
		Status:        string(dispute.Status),
		BookingStatus: string(bookingStatus),
		CreatedAt:     dispute.CreatedAt,
	}
}
