package finalize_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/service/bookings"
)

const (
	msgInvalidSlotID      = "некорректный идентификатор занятия"
	msgSlotNotFound       = "занятие не найдено"
	msgSlotNotFinalizable = "занятие не ожидает подтверждения"
	msgSlotDisputed       = "по занятию открыт спор"
	msgPaymentUnavailable = "платёжный сервис временно недоступен"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/finalize
// Вызывается внешним таймером по истечении окна споров
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/finalize - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.FinalizeSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/finalize - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookings.ErrSlotNotFinalizable):
			h.logger.Warn("POST /slots/%d/finalize - Slot not finalizable", slotID)
			handlers.RespondConflict(w, msgSlotNotFinalizable)

		case errors.Is(err, bookings.ErrSlotDisputed):
			h.logger.Warn("POST /slots/%d/finalize - Slot has open dispute", slotID)
			handlers.RespondConflict(w, msgSlotDisputed)

		case errors.Is(err, bookings.ErrPaymentUnavailable):
			h.logger.Error("POST /slots/%d/finalize - PaymentService unavailable: %v", slotID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /slots/%d/finalize - Failed to finalize slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/finalize - Slot finalized", slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
