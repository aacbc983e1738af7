package create_reschedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/reschedule"
)

// UseCase use case создания запроса на перенос занятия
type UseCase struct {
	patternRepo    PatternRepository
	bookingRepo    BookingRepository
	offerRepo      OfferRepository
	rescheduleRepo RescheduleRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patternRepo PatternRepository,
	bookingRepository BookingRepository,
	offerRepo OfferRepository,
	rescheduleRepository RescheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		patternRepo:    patternRepo,
		bookingRepo:    bookingRepository,
		offerRepo:      offerRepo,
		rescheduleRepo: rescheduleRepository,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания запроса на перенос
//
// Запрос может подать любой участник бронирования не позднее чем за
// 24 часа до начала занятия. Пока запрос не отвечен, целевая ячейка
// удерживается в сетке, а второй запрос по тому же слоту не принимается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReschedule: slot=%d, user=%d, target=%s/%d",
		req.SlotID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewSlotIndex)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReschedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.RescheduleRequest

	// 2. Проверяем слот и создаём запрос в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем переносимый слот с блокировкой
		slot, err := uc.bookingRepo.GetSlotByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.Status != domain.SlotStatusPending {
			return ErrSlotNotPending
		}

		booking, err := uc.bookingRepo.GetByID(txCtx, slot.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Перенос доступен обоим участникам бронирования
		if booking.LearnerID != req.UserID && booking.TutorID != req.UserID {
			return ErrAccessDenied
		}

		// 2.3. Окно подачи: не позднее чем за 24 часа до начала занятия
		if !domain.CanRequestReschedule(slot.StartUTC(), now) {
			return ErrTooLateToReschedule
		}

		// 2.4. По слоту допускается только один неотвеченный запрос.
		// Запрос с истёкшим окном ответа закрываем как отклонённый
		if err := uc.closePendingRequest(txCtx, req.SlotID, now); err != nil {
			return err
		}

		// 2.5. Целевая ячейка должна быть свободна в актуальной сетке
		if err := uc.checkTargetAvailable(txCtx, booking.TutorID, req, now); err != nil {
			return err
		}

		created, err := uc.rescheduleRepo.Create(txCtx, &domain.RescheduleRequest{
			BookedSlotID:    req.SlotID,
			Reason:          strings.TrimSpace(req.Reason),
			NewSlotDateTime: domain.SlotStartUTC(req.NewDate, req.NewSlotIndex),
			NewSlotIndex:    req.NewSlotIndex,
			Status:          domain.ReschedulePendingResponse,
		})
		if err != nil {
			uc.logger.Error("CreateReschedule: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReschedule: request id=%d created for slot=%d", result.ID, result.BookedSlotID)

	return toResponse(result), nil
}

// closePendingRequest проверяет отсутствие активного запроса по слоту
// Истёкший pending-запрос помечается отклонённым и не блокирует новый
func (uc *UseCase) closePendingRequest(ctx context.Context, slotID int64, now time.Time) error {
	pending, err := uc.rescheduleRepo.GetPendingBySlotID(ctx, slotID)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			return nil
		}
		return fmt.Errorf("%w: failed to get pending request: %v", ErrInternal, err)
	}

	if !pending.IsExpired(now) {
		return ErrAlreadyRequested
	}

	if err := uc.rescheduleRepo.UpdateStatus(ctx, pending.ID, domain.RescheduleRejected, now); err != nil {
		return fmt.Errorf("%w: failed to close expired request: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReschedule: expired request id=%d closed as rejected", pending.ID)
	return nil
}

// checkTargetAvailable проверяет, что целевая ячейка доступна по шаблону
// и не занята бронированием, оффером или другим переносом
func (uc *UseCase) checkTargetAvailable(ctx context.Context, tutorID int64, req *Request, now time.Time) error {
	if domain.IsPastSlot(req.NewDate, req.NewSlotIndex, now) {
		return ErrTargetSlotUnavailable
	}

	targetDate := req.NewDate

	patterns, err := uc.patternRepo.GetAllByTutor(ctx, tutorID)
	if err != nil {
		return fmt.Errorf("%w: failed to get patterns: %v", ErrInternal, err)
	}

	bookedSlots, err := uc.bookingRepo.GetActiveSlotsInRange(ctx, tutorID, targetDate, targetDate)
	if err != nil {
		return fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	rangeEnd := targetDate.AddDate(0, 0, 1)
	offeredSlots, err := uc.offerRepo.GetActiveSlotsInRange(ctx, tutorID, targetDate, rangeEnd, now)
	if err != nil {
		return fmt.Errorf("%w: failed to get offered slots: %v", ErrInternal, err)
	}

	pendingTargets, err := uc.rescheduleRepo.GetPendingTargetsInRange(ctx, tutorID, targetDate, rangeEnd, now)
	if err != nil {
		return fmt.Errorf("%w: failed to get reschedule targets: %v", ErrInternal, err)
	}

	occupied := make([]domain.OccupiedSlot, 0, len(bookedSlots)+len(offeredSlots)+len(pendingTargets))
	for _, s := range bookedSlots {
		occupied = append(occupied, domain.OccupiedSlot{
			Date:      s.BookedDate,
			SlotIndex: s.SlotIndex,
			Kind:      domain.OccupancyBooked,
		})
	}
	for _, s := range offeredSlots {
		offerID := s.OfferID
		occupied = append(occupied, domain.OccupiedSlot{
			Date:      s.SlotDateTime,
			SlotIndex: s.SlotIndex,
			Kind:      domain.OccupancyOnHold,
			OfferID:   &offerID,
		})
	}
	for _, r := range pendingTargets {
		occupied = append(occupied, domain.OccupiedSlot{
			Date:      r.NewSlotDateTime,
			SlotIndex: r.NewSlotIndex,
			Kind:      domain.OccupancyOnHold,
		})
	}

	days, err := domain.BuildScheduleWindow(patterns, targetDate, targetDate, occupied, now)
	if err != nil {
		return fmt.Errorf("%w: failed to build window: %v", ErrInternal, err)
	}

	cell := domain.CellAt(days, targetDate, req.NewSlotIndex)
	if cell.Status != domain.CellAvailable {
		uc.logger.Warn("CreateReschedule: target date=%s index=%d is %s",
			targetDate.Format(domain.DateFormat), req.NewSlotIndex, cell.Status)
		return ErrTargetSlotUnavailable
	}

	return nil
}
