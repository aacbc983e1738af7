package raise_dispute

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
)

// UseCase use case открытия спора по слоту бронирования
type UseCase struct {
	bookingRepo BookingRepository
	disputeRepo DisputeRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	disputeRepo DisputeRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepository,
		disputeRepo: disputeRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case открытия спора
//
// Спор открывает только ученик и только по слоту в awaiting_confirmation:
// после завершения занятия, но до подтверждения и перевода средств.
// Средства слота переводятся в disputed и замораживаются до резолюции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RaiseDispute: slot=%d, learner=%d", req.SlotID, req.LearnerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RaiseDispute: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Dispute
	var bookingStatus domain.BookingStatus

	// 2. Открываем спор в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем слот с блокировкой
		slot, err := uc.bookingRepo.GetSlotByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Окно спора: занятие завершено, но ещё не подтверждено
		if slot.Status != domain.SlotStatusAwaitingConfirmation {
			return ErrSlotNotDisputable
		}

		booking, err := uc.bookingRepo.GetByID(txCtx, slot.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.LearnerID != req.LearnerID {
			return ErrAccessDenied
		}

		// 2.3. По слоту допускается только один открытый спор
		hasOpen, err := uc.disputeRepo.HasOpenBySlotID(txCtx, req.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to check open disputes: %v", ErrInternal, err)
		}
		if hasOpen {
			return ErrDisputeAlreadyOpen
		}

		created, err := uc.disputeRepo.Create(txCtx, &domain.Dispute{
			CaseNumber:    fmt.Sprintf("DSP-%s", uuid.New().String()),
			BookedSlotID:  req.SlotID,
			LearnerID:     req.LearnerID,
			LearnerReason: strings.TrimSpace(req.Reason),
			Status:        domain.DisputePendingReconciliation,
		})
		if err != nil {
			uc.logger.Error("RaiseDispute: failed to create dispute: %v", err)
			return fmt.Errorf("%w: failed to create dispute: %v", ErrInternal, err)
		}

		// 2.4. Замораживаем средства слота до резолюции
		if slot.Fund != nil && slot.Fund.Status == domain.FundHeld {
			if err := uc.bookingRepo.UpdateFundStatus(txCtx, slot.Fund.ID, domain.FundDisputed); err != nil {
				return fmt.Errorf("%w: failed to update fund: %v", ErrInternal, err)
			}
		}

		// 2.5. Пересчитываем агрегатный статус бронирования
		status, err := uc.recalcBookingStatus(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		bookingStatus = status
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RaiseDispute: dispute id=%d case=%s opened for slot=%d", result.ID, result.CaseNumber, result.BookedSlotID)

	return toResponse(result, bookingStatus), nil
}

// recalcBookingStatus выводит статус бронирования из слотов и открытых
// споров и сохраняет его, если он изменился
func (uc *UseCase) recalcBookingStatus(ctx context.Context, booking *domain.Booking) (domain.BookingStatus, error) {
	openDisputes, err := uc.disputeRepo.ListOpenByBookingID(ctx, booking.ID)
	if err != nil {
		return "", fmt.Errorf("%w: failed to list open disputes: %v", ErrInternal, err)
	}

	openBySlot := make(map[int64]bool, len(openDisputes))
	for _, d := range openDisputes {
		openBySlot[d.BookedSlotID] = true
	}

	derived := domain.DeriveBookingStatus(booking.Slots, func(slotID int64) bool {
		return openBySlot[slotID]
	})

	if derived != booking.Status {
		if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, derived); err != nil {
			return "", fmt.Errorf("%w: failed to update booking status: %v", ErrInternal, err)
		}
	}

	return derived, nil
}
