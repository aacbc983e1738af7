package update_offer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	updateOffer "github.com/m04kA/SMC-TutoringService/internal/usecase/update_offer"
)

const (
	msgInvalidOfferID     = "некорректный идентификатор оффера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekStart   = "некорректный формат даты начала недели, ожидается YYYY-MM-DD"
	msgOfferNotFound      = "оффер не найден"
	msgOfferExpired       = "срок действия оффера истёк"
	msgAccessDenied       = "оффер принадлежит другому репетитору"
	msgNoSlotsSelected    = "не выбран ни один слот"
	msgSlotUnavailable    = "один из выбранных слотов недоступен"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateOfferUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOfferUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/offers/{offerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /offers/{offerId} - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	tutorID, _ := middleware.UserID(r.Context())

	var req UpdateOfferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /offers/%d - Invalid request body: %v", offerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(offerID, tutorID)
	if err != nil {
		h.logger.Warn("PUT /offers/%d - Failed to parse request: %v", offerID, err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateOffer.ErrOfferNotFound):
			h.logger.Warn("PUT /offers/%d - Offer not found", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, updateOffer.ErrOfferExpired):
			h.logger.Warn("PUT /offers/%d - Offer expired", offerID)
			handlers.RespondConflict(w, msgOfferExpired)

		case errors.Is(err, updateOffer.ErrAccessDenied):
			h.logger.Warn("PUT /offers/%d - Access denied: tutor_id=%d", offerID, tutorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, updateOffer.ErrNoSlotsSelected):
			h.logger.Warn("PUT /offers/%d - No slots selected", offerID)
			handlers.RespondBadRequest(w, msgNoSlotsSelected)

		case errors.Is(err, updateOffer.ErrSlotUnavailable):
			h.logger.Warn("PUT /offers/%d - Slot unavailable", offerID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, updateOffer.ErrInvalidInput):
			h.logger.Warn("PUT /offers/%d - Invalid input: %v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /offers/%d - Failed to update offer: %v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /offers/%d - Offer updated: slots=%d, added=%d, removed=%d",
		offerID, result.SlotCount, len(result.Added), len(result.Removed))
	handlers.RespondJSON(w, http.StatusOK, result)
}
