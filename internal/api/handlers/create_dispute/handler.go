package create_dispute

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	raiseDispute "github.com/m04kA/SMC-TutoringService/internal/usecase/raise_dispute"
)

const (
	msgInvalidSlotID      = "некорректный идентификатор занятия"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "занятие не найдено"
	msgAccessDenied       = "спор может открыть только ученик бронирования"
	msgSlotNotDisputable  = "занятие нельзя оспорить в текущем статусе"
	msgDisputeAlreadyOpen = "по занятию уже открыт спор"
	msgInvalidInput       = "некорректные входные данные"
)

// CreateDisputeRequest HTTP request model
type CreateDisputeRequest struct {
	Reason string `json:"reason"`
}

type Handler struct {
	useCase RaiseDisputeUseCase
	logger  Logger
}

func NewHandler(useCase RaiseDisputeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/dispute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/dispute - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	var req CreateDisputeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/%d/dispute - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &raiseDispute.Request{
		SlotID:    slotID,
		LearnerID: userID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, raiseDispute.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/dispute - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, raiseDispute.ErrAccessDenied):
			h.logger.Warn("POST /slots/%d/dispute - Access denied: user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, raiseDispute.ErrSlotNotDisputable):
			h.logger.Warn("POST /slots/%d/dispute - Slot not disputable", slotID)
			handlers.RespondConflict(w, msgSlotNotDisputable)

		case errors.Is(err, raiseDispute.ErrDisputeAlreadyOpen):
			h.logger.Warn("POST /slots/%d/dispute - Dispute already open", slotID)
			handlers.RespondConflict(w, msgDisputeAlreadyOpen)

		case errors.Is(err, raiseDispute.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/dispute - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/%d/dispute - Failed to raise dispute: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/dispute - Dispute raised: dispute_id=%d, case=%s, user_id=%d",
		slotID, result.ID, result.CaseNumber, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
