package create_offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	lessonClient "github.com/m04kA/SMC-TutoringService/internal/integrations/lessonservice"
)

// UseCase use case создания оффера
type UseCase struct {
	patternRepo    PatternRepository
	bookingRepo    BookingRepository
	offerRepo      OfferRepository
	rescheduleRepo RescheduleRepository
	lessonClient   LessonServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patternRepo PatternRepository,
	bookingRepo BookingRepository,
	offerRepo OfferRepository,
	rescheduleRepo RescheduleRepository,
	lessonClient LessonServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		patternRepo:    patternRepo,
		bookingRepo:    bookingRepo,
		offerRepo:      offerRepo,
		rescheduleRepo: rescheduleRepo,
		lessonClient:   lessonClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания оффера
// Использует сериализуемую транзакцию: между проверкой доступности
// выбранных ячеек и созданием оффера слоты не должны занять другие записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOffer: tutor=%d, learner=%d, lesson=%d, slots=%d",
		req.TutorID, req.LearnerID, req.LessonID, len(req.Selections))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOffer: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем урок и проверяем владение
	lesson, err := uc.lessonClient.GetLesson(ctx, req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, lessonClient.ErrLessonNotFound):
			uc.logger.Warn("CreateOffer: lesson id=%d not found", req.LessonID)
			return nil, ErrLessonNotFound
		case errors.Is(err, lessonClient.ErrServiceUnavailable):
			uc.logger.Error("CreateOffer: lesson service unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrLessonServiceUnavailable, err)
		default:
			uc.logger.Error("CreateOffer: failed to get lesson id=%d: %v", req.LessonID, err)
			return nil, fmt.Errorf("%w: failed to get lesson: %v", ErrInternal, err)
		}
	}

	if lesson.TutorID != req.TutorID {
		uc.logger.Warn("CreateOffer: lesson id=%d belongs to tutor=%d, not tutor=%d",
			req.LessonID, lesson.TutorID, req.TutorID)
		return nil, ErrLessonNotOwned
	}
	if !lesson.IsActive {
		uc.logger.Warn("CreateOffer: lesson id=%d is not active", req.LessonID)
		return nil, ErrLessonInactive
	}

	now := uc.timeProvider.Now()

	var result *domain.Offer

	// 3. Проверяем доступность ячеек и создаем оффер в транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Прогоняем выбор через селектор против актуальной сетки
		flat, err := uc.resolveSelections(txCtx, req, now)
		if err != nil {
			return err
		}

		// 3.2. Собираем оффер
		offer := &domain.Offer{
			TutorID:         req.TutorID,
			LearnerID:       req.LearnerID,
			LessonID:        req.LessonID,
			PricePerSlot:    lesson.PricePerSlot,
			TotalPrice:      lesson.PricePerSlot * float64(len(flat)),
			DurationMinutes: lesson.DurationMinutes,
			ExpiresAt:       domain.OfferExpiry(now),
		}
		for _, sel := range flat {
			offer.Slots = append(offer.Slots, domain.OfferedSlot{
				SlotDateTime: sel.SlotDateTime,
				SlotIndex:    storageIndexOf(sel.SlotDateTime),
			})
		}

		// 3.3. Сохраняем
		created, err := uc.offerRepo.Create(txCtx, offer)
		if err != nil {
			uc.logger.Error("CreateOffer: failed to create offer: %v", err)
			return fmt.Errorf("%w: failed to create offer: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateOffer: successfully created offer id=%d with %d slots, expires_at=%s",
		result.ID, len(result.Slots), result.ExpiresAt.Format(time.RFC3339))

	return toResponse(result, lesson.Name), nil
}

// resolveSelections строит актуальную сетку доступности и прогоняет
// через селектор каждую выбранную ячейку
func (uc *UseCase) resolveSelections(ctx context.Context, req *Request, now time.Time) ([]domain.SlotSelection, error) {
	from, to, err := selectionDateRange(req.Selections)
	if err != nil {
		return nil, err
	}

	days, err := uc.buildWindow(ctx, req.TutorID, from, to, now)
	if err != nil {
		return nil, err
	}

	selector := domain.NewOfferSlotSelector(nil)
	for _, sel := range req.Selections {
		storageDate, storageIndex, err := domain.ToStorageSlotForWeek(sel.WeekStart, sel.DayInWeek, sel.SlotIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		cell := domain.CellAt(days, storageDate, storageIndex)
		isPast := domain.IsPastSlot(storageDate, storageIndex, now)
		if !selector.CanSelect(cell, isPast) {
			uc.logger.Warn("CreateOffer: cell date=%s index=%d is not selectable (status=%s, past=%v)",
				storageDate.Format(domain.DateFormat), storageIndex, cell.Status, isPast)
			return nil, ErrSlotUnavailable
		}

		if err := selector.Toggle(sel.WeekStart, sel.DayInWeek, sel.SlotIndex); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	flat, err := selector.Flatten()
	if err != nil {
		if errors.Is(err, domain.ErrNoSlotsSelected) {
			return nil, ErrNoSlotsSelected
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return flat, nil
}

// buildWindow собирает сетку доступности репетитора на диапазон дат
func (uc *UseCase) buildWindow(ctx context.Context, tutorID int64, from, to time.Time, now time.Time) ([]domain.DaySchedule, error) {
	patterns, err := uc.patternRepo.GetAllByTutor(ctx, tutorID)
	if err != nil {
		uc.logger.Error("CreateOffer: failed to get patterns: %v", err)
		return nil, fmt.Errorf("%w: failed to get patterns: %v", ErrInternal, err)
	}

	bookedSlots, err := uc.bookingRepo.GetActiveSlotsInRange(ctx, tutorID, from, to)
	if err != nil {
		uc.logger.Error("CreateOffer: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	rangeEnd := to.AddDate(0, 0, 1)
	offeredSlots, err := uc.offerRepo.GetActiveSlotsInRange(ctx, tutorID, from, rangeEnd, now)
	if err != nil {
		uc.logger.Error("CreateOffer: failed to get offered slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get offered slots: %v", ErrInternal, err)
	}

	pendingTargets, err := uc.rescheduleRepo.GetPendingTargetsInRange(ctx, tutorID, from, rangeEnd, now)
	if err != nil {
		uc.logger.Error("CreateOffer: failed to get reschedule targets: %v", err)
		return nil, fmt.Errorf("%w: failed to get reschedule targets: %v", ErrInternal, err)
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

	days, err := domain.BuildScheduleWindow(patterns, from, to, occupied, now)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build window: %v", ErrInternal, err)
	}

	return days, nil
}
