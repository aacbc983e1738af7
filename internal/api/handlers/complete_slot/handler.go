package complete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	completeSlot "github.com/m04kA/SMC-TutoringService/internal/usecase/complete_slot"
)

const (
	msgInvalidSlotID  = "некорректный идентификатор занятия"
	msgSlotNotFound   = "занятие не найдено"
	msgAccessDenied   = "занятие может завершить только репетитор"
	msgSlotNotPending = "занятие нельзя завершить в текущем статусе"
	msgOutOfOrder     = "сначала нужно завершить более ранние занятия"
)

type Handler struct {
	useCase CompleteSlotUseCase
	logger  Logger
}

func NewHandler(useCase CompleteSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/complete - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &completeSlot.Request{
		SlotID: slotID,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/complete - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, completeSlot.ErrAccessDenied):
			h.logger.Warn("POST /slots/%d/complete - Access denied: user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, completeSlot.ErrSlotNotPending):
			h.logger.Warn("POST /slots/%d/complete - Slot not pending", slotID)
			handlers.RespondConflict(w, msgSlotNotPending)

		case errors.Is(err, completeSlot.ErrOutOfOrder):
			h.logger.Warn("POST /slots/%d/complete - Out of order completion", slotID)
			handlers.RespondConflict(w, msgOutOfOrder)

		case errors.Is(err, completeSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/complete - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("POST /slots/%d/complete - Failed to complete slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/complete - Slot completed: user_id=%d, status=%s", slotID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
