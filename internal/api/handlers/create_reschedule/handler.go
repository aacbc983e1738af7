package create_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	createReschedule "github.com/m04kA/SMC-TutoringService/internal/usecase/create_reschedule"
)

const (
	msgInvalidSlotID      = "некорректный идентификатор занятия"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotFound       = "занятие не найдено"
	msgSlotNotPending     = "занятие нельзя перенести в текущем статусе"
	msgAccessDenied       = "перенос доступен только участникам бронирования"
	msgTooLate            = "до начала занятия осталось меньше 24 часов"
	msgAlreadyRequested   = "по занятию уже есть неотвеченный запрос на перенос"
	msgTargetUnavailable  = "целевой слот недоступен"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase CreateRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/reschedule - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	var req CreateRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/%d/reschedule - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slotID, userID)
	if err != nil {
		h.logger.Warn("POST /slots/%d/reschedule - Failed to parse request: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReschedule.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/reschedule - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReschedule.ErrSlotNotPending):
			h.logger.Warn("POST /slots/%d/reschedule - Slot not pending", slotID)
			handlers.RespondConflict(w, msgSlotNotPending)

		case errors.Is(err, createReschedule.ErrAccessDenied):
			h.logger.Warn("POST /slots/%d/reschedule - Access denied: user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createReschedule.ErrTooLateToReschedule):
			h.logger.Warn("POST /slots/%d/reschedule - Too late to reschedule", slotID)
			handlers.RespondConflict(w, msgTooLate)

		case errors.Is(err, createReschedule.ErrAlreadyRequested):
			h.logger.Warn("POST /slots/%d/reschedule - Already requested", slotID)
			handlers.RespondConflict(w, msgAlreadyRequested)

		case errors.Is(err, createReschedule.ErrTargetSlotUnavailable):
			h.logger.Warn("POST /slots/%d/reschedule - Target slot unavailable", slotID)
			handlers.RespondConflict(w, msgTargetUnavailable)

		case errors.Is(err, createReschedule.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/reschedule - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/%d/reschedule - Failed to create request: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/reschedule - Request created: request_id=%d, user_id=%d", slotID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
