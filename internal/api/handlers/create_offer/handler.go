package create_offer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	createOffer "github.com/m04kA/SMC-TutoringService/internal/usecase/create_offer"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWeekStart    = "некорректный формат даты начала недели, ожидается YYYY-MM-DD"
	msgLessonNotFound      = "урок не найден"
	msgLessonNotOwned      = "урок принадлежит другому репетитору"
	msgLessonInactive      = "урок неактивен"
	msgNoSlotsSelected     = "не выбран ни один слот"
	msgSlotUnavailable     = "один из выбранных слотов недоступен"
	msgLessonServiceIssues = "сервис уроков временно недоступен"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase CreateOfferUseCase
	logger  Logger
}

func NewHandler(useCase CreateOfferUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/offers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tutorID, _ := middleware.UserID(r.Context())

	var req CreateOfferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /offers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tutorID)
	if err != nil {
		h.logger.Warn("POST /offers - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createOffer.ErrLessonNotFound):
			h.logger.Warn("POST /offers - Lesson not found: lesson_id=%d", req.LessonID)
			handlers.RespondNotFound(w, msgLessonNotFound)

		case errors.Is(err, createOffer.ErrLessonNotOwned):
			h.logger.Warn("POST /offers - Lesson not owned: tutor_id=%d, lesson_id=%d", tutorID, req.LessonID)
			handlers.RespondForbidden(w, msgLessonNotOwned)

		case errors.Is(err, createOffer.ErrLessonInactive):
			h.logger.Warn("POST /offers - Lesson inactive: lesson_id=%d", req.LessonID)
			handlers.RespondBadRequest(w, msgLessonInactive)

		case errors.Is(err, createOffer.ErrNoSlotsSelected):
			h.logger.Warn("POST /offers - No slots selected: tutor_id=%d", tutorID)
			handlers.RespondBadRequest(w, msgNoSlotsSelected)

		case errors.Is(err, createOffer.ErrSlotUnavailable):
			h.logger.Warn("POST /offers - Slot unavailable: tutor_id=%d", tutorID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createOffer.ErrLessonServiceUnavailable):
			h.logger.Error("POST /offers - LessonService unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLessonServiceIssues)

		case errors.Is(err, createOffer.ErrInvalidInput):
			h.logger.Warn("POST /offers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /offers - Failed to create offer: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /offers - Offer created: offer_id=%d, tutor_id=%d, slots=%d",
		result.ID, tutorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
