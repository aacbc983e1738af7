package update_offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	offerRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/offer"
)

// UseCase use case обновления оффера
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
	bookingRepo BookingRepository,
	offerRepository OfferRepository,
	rescheduleRepo RescheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		patternRepo:    patternRepo,
		bookingRepo:    bookingRepo,
		offerRepo:      offerRepository,
		rescheduleRepo: rescheduleRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case обновления оффера
//
// Набор слотов заменяется целиком. Собственные onhold-слоты оффера
// разрешено выбирать заново; валидация набора не зависит от того,
// какие слоты добавились или удалились. Срок действия оффера
// продлевается от момента обновления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOffer: offer=%d, tutor=%d, slots=%d", req.OfferID, req.TutorID, len(req.Selections))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateOffer: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Offer
	var added, removed []domain.OfferedSlot

	// 2. Проверяем оффер и заменяем набор слотов в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем оффер с блокировкой
		offer, err := uc.offerRepo.GetByID(txCtx, req.OfferID)
		if err != nil {
			if errors.Is(err, offerRepo.ErrOfferNotFound) {
				return ErrOfferNotFound
			}
			return fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}

		if offer.TutorID != req.TutorID {
			return ErrAccessDenied
		}

		// 2.2. Истёкший оффер не редактируется - только создание нового
		if offer.IsExpired(now) {
			return ErrOfferExpired
		}

		// 2.3. Прогоняем итоговый выбор через селектор
		flat, err := uc.resolveSelections(txCtx, req, offer.ID, now)
		if err != nil {
			return err
		}

		newSlots := make([]domain.OfferedSlot, 0, len(flat))
		for _, sel := range flat {
			newSlots = append(newSlots, domain.OfferedSlot{
				OfferID:      offer.ID,
				SlotDateTime: sel.SlotDateTime,
				SlotIndex:    storageIndexOf(sel.SlotDateTime),
			})
		}

		// 2.4. Сводка изменений для пользователя
		added, removed = domain.DiffOfferedSlots(offer.Slots, newSlots)

		// 2.5. Сохраняем с продлением срока действия
		offer.Slots = newSlots
		offer.TotalPrice = offer.PricePerSlot * float64(len(newSlots))
		offer.ExpiresAt = domain.OfferExpiry(now)

		if err := uc.offerRepo.Update(txCtx, offer); err != nil {
			uc.logger.Error("UpdateOffer: failed to update offer id=%d: %v", offer.ID, err)
			return fmt.Errorf("%w: failed to update offer: %v", ErrInternal, err)
		}

		result = offer
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateOffer: offer id=%d updated, %d slots (+%d/-%d), expires_at=%s",
		result.ID, len(result.Slots), len(added), len(removed), result.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:         result.ID,
		TotalPrice: result.TotalPrice,
		ExpiresAt:  result.ExpiresAt,
		SlotCount:  len(result.Slots),
		Added:      toSlotChanges(added),
		Removed:    toSlotChanges(removed),
	}, nil
}

// resolveSelections строит актуальную сетку и прогоняет выбор через
// селектор в режиме редактирования оффера
func (uc *UseCase) resolveSelections(ctx context.Context, req *Request, editingOfferID int64, now time.Time) ([]domain.SlotSelection, error) {
	from, to, err := selectionDateRange(req.Selections)
	if err != nil {
		return nil, err
	}

	days, err := uc.buildWindow(ctx, req.TutorID, from, to, now)
	if err != nil {
		return nil, err
	}

	selector := domain.NewOfferSlotSelector(&editingOfferID)
	for _, sel := range req.Selections {
		storageDate, storageIndex, err := domain.ToStorageSlotForWeek(sel.WeekStart, sel.DayInWeek, sel.SlotIndex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		cell := domain.CellAt(days, storageDate, storageIndex)
		isPast := domain.IsPastSlot(storageDate, storageIndex, now)
		if !selector.CanSelect(cell, isPast) {
			uc.logger.Warn("UpdateOffer: cell date=%s index=%d is not selectable (status=%s, past=%v)",
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
		uc.logger.Error("UpdateOffer: failed to get patterns: %v", err)
		return nil, fmt.Errorf("%w: failed to get patterns: %v", ErrInternal, err)
	}

	bookedSlots, err := uc.bookingRepo.GetActiveSlotsInRange(ctx, tutorID, from, to)
	if err != nil {
		uc.logger.Error("UpdateOffer: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	rangeEnd := to.AddDate(0, 0, 1)
	offeredSlots, err := uc.offerRepo.GetActiveSlotsInRange(ctx, tutorID, from, rangeEnd, now)
	if err != nil {
		uc.logger.Error("UpdateOffer: failed to get offered slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get offered slots: %v", ErrInternal, err)
	}

	pendingTargets, err := uc.rescheduleRepo.GetPendingTargetsInRange(ctx, tutorID, from, rangeEnd, now)
	if err != nil {
		uc.logger.Error("UpdateOffer: failed to get reschedule targets: %v", err)
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
