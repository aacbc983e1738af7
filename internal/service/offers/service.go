package offers

import (
	"context"
	"errors"
	"fmt"

	offerRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/offer"
)

// Service сервис для работы с офферами
// Создание и обновление офферов - в usecase-слое: там нужны проверки
// против сетки доступности. Здесь только простые операции
type Service struct {
	offerRepo OfferRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса офферов
func NewService(offerRepo OfferRepository, logger Logger) *Service {
	return &Service{
		offerRepo: offerRepo,
		logger:    logger,
	}
}

// Delete удаляет оффер репетитора, освобождая его onhold-слоты в сетке
// Доступно только автору оффера
func (s *Service) Delete(ctx context.Context, offerID, userID int64) error {
	s.logger.Info("Delete: deleting offer id=%d by user=%d", offerID, userID)

	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			s.logger.Warn("Delete: offer id=%d not found", offerID)
			return ErrOfferNotFound
		}
		s.logger.Error("Delete: repository error for offer id=%d: %v", offerID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if offer.TutorID != userID {
		s.logger.Warn("Delete: access denied for user=%d to offer id=%d", userID, offerID)
		return ErrAccessDenied
	}

	if err := s.offerRepo.Delete(ctx, offerID); err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			return ErrOfferNotFound
		}
		s.logger.Error("Delete: repository error for offer id=%d: %v", offerID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted offer id=%d", offerID)
	return nil
}
