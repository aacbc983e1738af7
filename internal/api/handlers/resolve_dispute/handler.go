package resolve_dispute

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/service/disputes"
)

const (
	msgInvalidDisputeID   = "некорректный идентификатор спора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDisputeNotFound    = "спор не найден"
	msgAlreadyResolved    = "спор уже разрешён"
	msgInvalidOutcome     = "некорректный исход спора"
	msgPaymentUnavailable = "платёжный сервис временно недоступен"
)

type Handler struct {
	service DisputesService
	logger  Logger
}

func NewHandler(service DisputesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/disputes/{disputeId}/resolve
// Вызывается стаффом платформы после ручного разбора спора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	disputeID, err := strconv.ParseInt(vars["disputeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /disputes/{disputeId}/resolve - Invalid dispute ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDisputeID)
		return
	}

	var req disputes.ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /disputes/%d/resolve - Invalid request body: %v", disputeID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Resolve(r.Context(), disputeID, &req); err != nil {
		switch {
		case errors.Is(err, disputes.ErrDisputeNotFound):
			h.logger.Warn("POST /disputes/%d/resolve - Dispute not found", disputeID)
			handlers.RespondNotFound(w, msgDisputeNotFound)

		case errors.Is(err, disputes.ErrAlreadyResolved):
			h.logger.Warn("POST /disputes/%d/resolve - Already resolved", disputeID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, disputes.ErrInvalidOutcome):
			h.logger.Warn("POST /disputes/%d/resolve - Invalid outcome: %s", disputeID, req.Outcome)
			handlers.RespondBadRequest(w, msgInvalidOutcome)

		case errors.Is(err, disputes.ErrPaymentUnavailable):
			h.logger.Error("POST /disputes/%d/resolve - PaymentService unavailable: %v", disputeID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /disputes/%d/resolve - Failed to resolve dispute: %v", disputeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /disputes/%d/resolve - Dispute resolved: outcome=%s", disputeID, req.Outcome)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
