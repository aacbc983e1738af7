package put_weekly_pattern

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	"github.com/m04kA/SMC-TutoringService/internal/service/patterns"
	"github.com/m04kA/SMC-TutoringService/internal/service/patterns/models"
)

const (
	msgInvalidTutorID     = "некорректный идентификатор репетитора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPattern     = "некорректный шаблон доступности"
	msgAccessDenied       = "шаблон может менять только сам репетитор"
)

type Handler struct {
	service PatternsService
	logger  Logger
}

func NewHandler(service PatternsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tutors/{tutorId}/pattern
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /tutors/{tutorId}/pattern - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok || userID != tutorID {
		h.logger.Warn("PUT /tutors/%d/pattern - Access denied: user_id=%d", tutorID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.PutPatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tutors/%d/pattern - Invalid request body: %v", tutorID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Put(r.Context(), tutorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, patterns.ErrInvalidInput):
			h.logger.Warn("PUT /tutors/%d/pattern - Invalid pattern: %v", tutorID, err)
			handlers.RespondBadRequest(w, msgInvalidPattern)

		default:
			h.logger.Error("PUT /tutors/%d/pattern - Failed to publish pattern: %v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tutors/%d/pattern - Pattern published: id=%d", tutorID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
