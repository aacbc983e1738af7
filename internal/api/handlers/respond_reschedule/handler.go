package respond_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	"github.com/m04kA/SMC-TutoringService/internal/service/reschedules"
)

const (
	msgInvalidRequestID   = "некорректный идентификатор запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRequestNotFound    = "запрос на перенос не найден"
	msgAccessDenied       = "ответ доступен только участникам бронирования"
	msgAlreadyResponded   = "на запрос уже дан ответ"
	msgRequestExpired     = "окно ответа на запрос истекло"
	msgTargetUnavailable  = "целевой слот уже занят"
	msgSlotNotPending     = "исходное занятие уже нельзя перенести"
)

// RespondRescheduleRequest HTTP request model
type RespondRescheduleRequest struct {
	Accept bool `json:"accept"`
}

type Handler struct {
	service ReschedulesService
	logger  Logger
}

func NewHandler(service ReschedulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reschedules/{requestId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reschedules/{requestId}/respond - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	var req RespondRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reschedules/%d/respond - Invalid request body: %v", requestID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Respond(r.Context(), requestID, &reschedules.RespondRequest{
		UserID: userID,
		Accept: req.Accept,
	})
	if err != nil {
		switch {
		case errors.Is(err, reschedules.ErrRequestNotFound):
			h.logger.Warn("PATCH /reschedules/%d/respond - Request not found", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, reschedules.ErrAccessDenied):
			h.logger.Warn("PATCH /reschedules/%d/respond - Access denied: user_id=%d", requestID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reschedules.ErrAlreadyResponded):
			h.logger.Warn("PATCH /reschedules/%d/respond - Already responded", requestID)
			handlers.RespondConflict(w, msgAlreadyResponded)

		case errors.Is(err, reschedules.ErrRequestExpired):
			h.logger.Warn("PATCH /reschedules/%d/respond - Request expired", requestID)
			handlers.RespondConflict(w, msgRequestExpired)

		case errors.Is(err, reschedules.ErrTargetSlotUnavailable):
			h.logger.Warn("PATCH /reschedules/%d/respond - Target slot unavailable", requestID)
			handlers.RespondConflict(w, msgTargetUnavailable)

		case errors.Is(err, reschedules.ErrSlotNotPending):
			h.logger.Warn("PATCH /reschedules/%d/respond - Slot not pending", requestID)
			handlers.RespondConflict(w, msgSlotNotPending)

		default:
			h.logger.Error("PATCH /reschedules/%d/respond - Failed to respond: %v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reschedules/%d/respond - Responded: user_id=%d, accept=%v", requestID, userID, req.Accept)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
