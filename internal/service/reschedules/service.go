package reschedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/reschedule"
)

// RespondRequest ответ на запрос переноса занятия
type RespondRequest struct {
	UserID int64 `json:"userId"`
	Accept bool  `json:"accept"`
}

// Service сервис ответов на запросы переноса занятий
// Создание запросов - в usecase-слое: там нужны проверки окна
// и доступности целевого слота
type Service struct {
	rescheduleRepo RescheduleRepository
	bookingRepo    BookingRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса переносов
func NewService(
	rescheduleRepo RescheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		rescheduleRepo: rescheduleRepo,
		bookingRepo:    bookingRepo,
		txManager:      txManager,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Respond принимает или отклоняет запрос на перенос
//
// При акцепте доступность целевого слота перепроверяется: за время
// ожидания ответа слот могли занять. Занятый целевой слот не отклоняет
// запрос автоматически - вызывающая сторона получает ошибку и может
// ответить отказом явно
func (s *Service) Respond(ctx context.Context, requestID int64, req *RespondRequest) error {
	s.logger.Info("Respond: request id=%d user=%d accept=%v", requestID, req.UserID, req.Accept)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		request, err := s.rescheduleRepo.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
		}

		if !request.IsPending() {
			return ErrAlreadyResponded
		}

		now := s.timeProvider.Now()

		// Просроченный запрос фиксируем как отклонённый при первом же обращении
		if request.IsExpired(now) {
			if err := s.rescheduleRepo.UpdateStatus(ctx, requestID, domain.RescheduleRejected, now); err != nil {
				return fmt.Errorf("%w: Respond - expire request: %v", ErrInternal, err)
			}
			return ErrRequestExpired
		}

		slot, err := s.bookingRepo.GetSlotByID(ctx, request.BookedSlotID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Respond - load slot: %v", ErrInternal, err)
		}

		booking, err := s.bookingRepo.GetByID(ctx, slot.BookingID)
		if err != nil {
			return fmt.Errorf("%w: Respond - load booking: %v", ErrInternal, err)
		}

		if booking.LearnerID != req.UserID && booking.TutorID != req.UserID {
			return ErrAccessDenied
		}

		if !req.Accept {
			if err := s.rescheduleRepo.UpdateStatus(ctx, requestID, domain.RescheduleRejected, now); err != nil {
				return fmt.Errorf("%w: Respond - reject request: %v", ErrInternal, err)
			}
			return nil
		}

		if slot.Status != domain.SlotStatusPending {
			return ErrSlotNotPending
		}

		if err := s.checkTargetFree(ctx, booking.TutorID, request, slot.ID); err != nil {
			return err
		}

		targetDate := dateOnly(request.NewSlotDateTime)
		if err := s.bookingRepo.UpdateSlotSchedule(ctx, slot.ID, targetDate, request.NewSlotIndex); err != nil {
			return fmt.Errorf("%w: Respond - move slot: %v", ErrInternal, err)
		}

		if err := s.rescheduleRepo.UpdateStatus(ctx, requestID, domain.RescheduleAccepted, now); err != nil {
			return fmt.Errorf("%w: Respond - accept request: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrRequestNotFound) || errors.Is(err, ErrAccessDenied) ||
			errors.Is(err, ErrAlreadyResponded) || errors.Is(err, ErrRequestExpired) ||
			errors.Is(err, ErrTargetSlotUnavailable) || errors.Is(err, ErrSlotNotPending) {
			s.logger.Warn("Respond: request id=%d: %v", requestID, err)
			return err
		}
		s.logger.Error("Respond: request id=%d: %v", requestID, err)
		return err
	}

	s.logger.Info("Respond: request id=%d responded, accept=%v", requestID, req.Accept)
	return nil
}

// checkTargetFree проверяет, что целевой слот переноса не занят другим
// активным занятием того же репетитора
func (s *Service) checkTargetFree(ctx context.Context, tutorID int64, request *domain.RescheduleRequest, movingSlotID int64) error {
	targetDate := dateOnly(request.NewSlotDateTime)

	occupied, err := s.bookingRepo.GetActiveSlotsInRange(ctx, tutorID, targetDate, targetDate)
	if err != nil {
		return fmt.Errorf("%w: checkTargetFree - load slots: %v", ErrInternal, err)
	}

	for _, other := range occupied {
		if other.ID == movingSlotID {
			continue
		}
		if other.SlotIndex == request.NewSlotIndex && isSameDay(other.BookedDate, targetDate) {
			return ErrTargetSlotUnavailable
		}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
