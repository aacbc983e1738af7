package get_weekly_pattern

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/service/patterns"
)

const (
	msgInvalidTutorID  = "некорректный идентификатор репетитора"
	msgPatternNotFound = "шаблон доступности не найден"
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

// Handle GET /api/v1/tutors/{tutorId}/pattern
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{tutorId}/pattern - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	result, err := h.service.Get(r.Context(), tutorID)
	if err != nil {
		switch {
		case errors.Is(err, patterns.ErrPatternNotFound):
			h.logger.Warn("GET /tutors/%d/pattern - Pattern not found", tutorID)
			handlers.RespondNotFound(w, msgPatternNotFound)

		default:
			h.logger.Error("GET /tutors/%d/pattern - Failed to get pattern: %v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tutors/%d/pattern - Pattern returned: id=%d", tutorID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
