package offers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	offerRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/offer"
)

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

type fakeOfferRepo struct {
	offer   *domain.Offer
	deleted []int64
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	if r.offer == nil || r.offer.ID != id {
		return nil, offerRepo.ErrOfferNotFound
	}
	return r.offer, nil
}

func (r *fakeOfferRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func TestDelete_ByAuthor(t *testing.T) {
	repo := &fakeOfferRepo{offer: &domain.Offer{ID: 10, TutorID: 7}}
	svc := NewService(repo, &nopLogger{})

	err := svc.Delete(context.Background(), 10, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, repo.deleted)
}

func TestDelete_AccessDenied(t *testing.T) {
	repo := &fakeOfferRepo{offer: &domain.Offer{ID: 10, TutorID: 7}}
	svc := NewService(repo, &nopLogger{})

	err := svc.Delete(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&fakeOfferRepo{}, &nopLogger{})

	err := svc.Delete(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}
