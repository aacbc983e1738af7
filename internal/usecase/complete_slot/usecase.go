package complete_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
)

// UseCase use case завершения слота бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepository BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepository,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case завершения слота
//
// Слоты бронирования завершаются строго в хронологическом порядке.
// Повторный запрос для уже завершённого слота считается успехом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteSlot: slot=%d, user=%d", req.SlotID, req.UserID)

	// 1. Валидация входных данных
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var result *domain.BookedSlot

	// 2. Завершаем слот в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем слот с блокировкой
		slot, err := uc.bookingRepo.GetSlotByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Загружаем бронирование целиком ради проверки порядка слотов
		booking, err := uc.bookingRepo.GetByID(txCtx, slot.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.3. Завершать занятия может только репетитор
		if booking.TutorID != req.UserID {
			return ErrAccessDenied
		}

		completed, err := booking.CompleteSlot(req.SlotID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSlotNotPending):
				return ErrSlotNotPending
			case errors.Is(err, domain.ErrOutOfOrderCompletion):
				return ErrOutOfOrder
			}
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 2.4. Идемпотентный ретрай: переход уже был применён ранее
		if slot.Status == domain.SlotStatusAwaitingConfirmation {
			result = completed
			return nil
		}

		if err := uc.bookingRepo.UpdateSlotStatus(txCtx, completed.ID, completed.Status); err != nil {
			uc.logger.Error("CompleteSlot: failed to update slot id=%d: %v", completed.ID, err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		result = completed
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteSlot: slot id=%d moved to %s", result.ID, result.Status)

	return toResponse(result), nil
}
