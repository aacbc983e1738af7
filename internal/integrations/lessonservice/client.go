package lessonservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с LessonService (каталог уроков)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента LessonService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetLesson получает урок по ID
func (c *Client) GetLesson(ctx context.Context, lessonID int64) (*Lesson, error) {
	url := fmt.Sprintf("%s/internal/lessons/%d", c.baseURL, lessonID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты оборачиваем в ErrServiceUnavailable
		c.log.Error("LessonService request failed for lesson_id=%d: %v", lessonID, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid lesson ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrLessonNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusInternalServerError {
			c.log.Error("LessonService returned %d for lesson_id=%d", resp.StatusCode, lessonID)
			return nil, fmt.Errorf("%w: status code %d: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var lesson Lesson
	if err := json.NewDecoder(resp.Body).Decode(&lesson); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &lesson, nil
}
