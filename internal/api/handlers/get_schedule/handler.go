package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/domain"
	getScheduleWindow "github.com/m04kA/SMC-TutoringService/internal/usecase/get_schedule_window"
)

const (
	msgInvalidTutorID = "некорректный идентификатор репетитора"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange   = "некорректный диапазон дат"
	msgRangeTooWide   = "слишком широкий диапазон дат"
)

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/schedule?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{tutorId}/schedule - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /tutors/%d/schedule - Invalid startDate: %v", tutorID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /tutors/%d/schedule - Invalid endDate: %v", tutorID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getScheduleWindow.Request{
		TutorID:   tutorID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getScheduleWindow.ErrInvalidRange):
			h.logger.Warn("GET /tutors/%d/schedule - Invalid range: %v", tutorID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getScheduleWindow.ErrRangeTooWide):
			h.logger.Warn("GET /tutors/%d/schedule - Range too wide: %v", tutorID, err)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getScheduleWindow.ErrInvalidInput):
			h.logger.Warn("GET /tutors/%d/schedule - Invalid input: %v", tutorID, err)
			handlers.RespondBadRequest(w, msgInvalidTutorID)

		default:
			h.logger.Error("GET /tutors/%d/schedule - Failed to build schedule: %v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tutors/%d/schedule - Schedule built: days=%d", tutorID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
