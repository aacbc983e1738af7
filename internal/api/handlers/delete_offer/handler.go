package delete_offer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	"github.com/m04kA/SMC-TutoringService/internal/service/offers"
)

const (
	msgInvalidOfferID = "некорректный идентификатор оффера"
	msgOfferNotFound  = "оффер не найден"
	msgAccessDenied   = "оффер принадлежит другому репетитору"
)

type Handler struct {
	service OffersService
	logger  Logger
}

func NewHandler(service OffersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/offers/{offerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /offers/{offerId} - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	userID, _ := middleware.UserID(r.Context())

	if err := h.service.Delete(r.Context(), offerID, userID); err != nil {
		switch {
		case errors.Is(err, offers.ErrOfferNotFound):
			h.logger.Warn("DELETE /offers/%d - Offer not found", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, offers.ErrAccessDenied):
			h.logger.Warn("DELETE /offers/%d - Access denied: user_id=%d", offerID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /offers/%d - Failed to delete offer: %v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /offers/%d - Offer deleted: user_id=%d", offerID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
