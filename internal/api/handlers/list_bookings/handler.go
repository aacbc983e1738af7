package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TutoringService/internal/api/handlers"
	"github.com/m04kA/SMC-TutoringService/internal/api/middleware"
	"github.com/m04kA/SMC-TutoringService/internal/service/bookings"
	"github.com/m04kA/SMC-TutoringService/internal/service/bookings/models"
)

const (
	msgInvalidInput = "некорректные параметры запроса"

	defaultPageSize = 20
	maxPageSize     = 100
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

// Handle GET /api/v1/bookings?role=learner&status=confirmed&page=0&pageSize=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	query := r.URL.Query()

	role := query.Get("role")
	if role == "" {
		role = "learner"
	}

	var status *string
	if raw := query.Get("status"); raw != "" {
		status = &raw
	}

	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	pageSize, err := strconv.ParseInt(query.Get("pageSize"), 10, 64)
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	result, err := h.service.List(r.Context(), &models.ListBookingsRequest{
		UserID:    userID,
		Role:      role,
		Status:    status,
		PageIndex: page,
		PageSize:  pageSize,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings listed: user_id=%d, role=%s, total=%d", userID, role, result.TotalItems)
	handlers.RespondJSON(w, http.StatusOK, result)
}
