package lessonservice

// Lesson модель урока из LessonService
type Lesson struct {
	ID              int64   `json:"id"`
	TutorID         int64   `json:"tutor_id"`
	Name            string  `json:"name"`
	PricePerSlot    float64 `json:"price_per_slot"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от LessonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
