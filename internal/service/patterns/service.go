package patterns

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	"github.com/m04kA/SMC-TutoringService/internal/service/patterns/models"
)

// Service сервис шаблонов недельной доступности
type Service struct {
	patternRepo  PatternRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(patternRepo PatternRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		patternRepo:  patternRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Get возвращает шаблон, активный для текущей недели
func (s *Service) Get(ctx context.Context, tutorID int64) (*models.PatternResponse, error) {
	s.logger.Info("Get: fetching active pattern for tutor=%d", tutorID)

	patterns, err := s.patternRepo.GetAllByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("Get: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	active := domain.ResolvePattern(patterns, domain.WeekStart(s.timeProvider.Now()))
	if active == nil {
		s.logger.Warn("Get: tutor=%d has no patterns", tutorID)
		return nil, ErrPatternNotFound
	}

	s.logger.Info("Get: active pattern id=%d for tutor=%d", active.ID, tutorID)
	return models.FromDomainPattern(active), nil
}

// Put публикует новую версию шаблона
// Старые версии сохраняются: уже рассчитанные недели продолжают
// использовать версию, действовавшую на их начало
func (s *Service) Put(ctx context.Context, tutorID int64, req *models.PutPatternRequest) (*models.PatternResponse, error) {
	s.logger.Info("Put: publishing pattern for tutor=%d applied_from=%s", tutorID, req.AppliedFrom)

	pattern, err := req.ToDomain(tutorID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidDate),
			errors.Is(err, models.ErrInvalidWeekday),
			errors.Is(err, models.ErrInvalidSlotIndex):
			s.logger.Warn("Put: invalid request for tutor=%d: %v", tutorID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return nil, fmt.Errorf("%w: Put - conversion error: %v", ErrInternal, err)
		}
	}

	created, err := s.patternRepo.Create(ctx, pattern)
	if err != nil {
		s.logger.Error("Put: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Put: published pattern id=%d for tutor=%d", created.ID, tutorID)
	return models.FromDomainPattern(created), nil
}
