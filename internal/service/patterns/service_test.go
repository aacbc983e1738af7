package patterns

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	"github.com/m04kA/SMC-TutoringService/internal/service/patterns/models"
)

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time {
	return p.now
}

type fakePatternRepo struct {
	patterns []*domain.WeeklyAvailabilityPattern
	created  *domain.WeeklyAvailabilityPattern
}

func (r *fakePatternRepo) GetAllByTutor(ctx context.Context, tutorID int64) ([]*domain.WeeklyAvailabilityPattern, error) {
	return r.patterns, nil
}

func (r *fakePatternRepo) Create(ctx context.Context, pattern *domain.WeeklyAvailabilityPattern) (*domain.WeeklyAvailabilityPattern, error) {
	created := *pattern
	created.ID = 5
	r.created = &created
	return &created, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(repo *fakePatternRepo, now time.Time) *Service {
	return NewService(repo, &fixedTime{now: now}, &nopLogger{})
}

func TestGet_ReturnsVersionActiveThisWeek(t *testing.T) {
	repo := &fakePatternRepo{
		patterns: []*domain.WeeklyAvailabilityPattern{
			{ID: 1, TutorID: 7, AppliedFrom: date(2025, 1, 1), Days: map[time.Weekday][]domain.SlotIndex{time.Monday: {20}}},
			{ID: 2, TutorID: 7, AppliedFrom: date(2025, 10, 20), Days: map[time.Weekday][]domain.SlotIndex{time.Monday: {22}}},
		},
	}

	// Текущая неделя начинается 13.10: вторая версия ещё не действует
	svc := newService(repo, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC))

	resp, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, []int{20}, resp.Days["monday"])

	// Неделей позже активна уже вторая версия
	svc = newService(repo, time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC))

	resp, err = svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
}

func TestGet_NoPatterns(t *testing.T) {
	svc := newService(&fakePatternRepo{}, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC))

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrPatternNotFound)
}

func TestPut_PublishesNewVersion(t *testing.T) {
	repo := &fakePatternRepo{}
	svc := newService(repo, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC))

	resp, err := svc.Put(context.Background(), 7, &models.PutPatternRequest{
		AppliedFrom: "2025-10-20",
		Days: map[string][]int{
			"monday":    {18, 19, 20},
			"wednesday": {20, 20, 22}, // дубликат схлопывается
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2025-10-20", resp.AppliedFrom)
	assert.Equal(t, []int{18, 19, 20}, resp.Days["monday"])
	assert.Equal(t, []int{20, 22}, resp.Days["wednesday"])
	assert.Empty(t, resp.Days["friday"])

	require.NotNil(t, repo.created)
	assert.Equal(t, int64(7), repo.created.TutorID)
}

func TestPut_InvalidInput(t *testing.T) {
	svc := newService(&fakePatternRepo{}, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		req  *models.PutPatternRequest
	}{
		{
			name: "bad date",
			req:  &models.PutPatternRequest{AppliedFrom: "20.10.2025"},
		},
		{
			name: "unknown weekday",
			req: &models.PutPatternRequest{
				AppliedFrom: "2025-10-20",
				Days:        map[string][]int{"someday": {20}},
			},
		},
		{
			name: "slot index out of grid",
			req: &models.PutPatternRequest{
				AppliedFrom: "2025-10-20",
				Days:        map[string][]int{"monday": {48}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Put(context.Background(), 7, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
