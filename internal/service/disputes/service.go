package disputes

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	disputeRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/dispute"
	paymentClient "github.com/m04kA/SMC-TutoringService/internal/integrations/paymentservice"
)

// ResolveRequest резолюция спора сотрудником поддержки
type ResolveRequest struct {
	Outcome    string `json:"outcome"` // learner_win | tutor_win | draw | withdrawn
	Resolution string `json:"resolution"`
}

// Service сервис резолюции споров
// Создание споров - в usecase-слое: там нужны проверки окна оспаривания
type Service struct {
	disputeRepo   DisputeRepository
	bookingRepo   BookingRepository
	paymentClient PaymentServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса споров
func NewService(
	disputeRepo DisputeRepository,
	bookingRepo BookingRepository,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		disputeRepo:   disputeRepo,
		bookingRepo:   bookingRepo,
		paymentClient: paymentClient,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Resolve закрывает спор с указанным исходом
//
// Исход определяет судьбу удержанных средств и статус занятия:
//   - learner_win: возврат ученику, занятие отменяется через спор
//   - tutor_win: средства на счёт репетитора, занятие засчитывается
//   - draw: средства остаются в disputed до ручного урегулирования
//   - withdrawn: средства остаются held и уходят по обычному таймеру
//
// Все изменения применяются в одной транзакции вместе с пересчётом
// агрегатного статуса бронирования
func (s *Service) Resolve(ctx context.Context, disputeID int64, req *ResolveRequest) error {
	s.logger.Info("Resolve: dispute id=%d outcome=%s", disputeID, req.Outcome)

	outcome := domain.DisputeOutcome(req.Outcome)

	disputeStatus, ok := domain.StatusForOutcome(outcome)
	if !ok {
		s.logger.Warn("Resolve: invalid outcome=%s for dispute id=%d", req.Outcome, disputeID)
		return ErrInvalidOutcome
	}
	fundStatus, _ := domain.FundStatusForOutcome(outcome)
	slotStatus, _ := domain.SlotStatusForOutcome(outcome)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		dispute, err := s.disputeRepo.GetByID(ctx, disputeID)
		if err != nil {
			if errors.Is(err, disputeRepo.ErrDisputeNotFound) {
				return ErrDisputeNotFound
			}
			return fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
		}

		if !dispute.IsOpen() {
			return ErrAlreadyResolved
		}

		slot, err := s.bookingRepo.GetSlotByID(ctx, dispute.BookedSlotID)
		if err != nil {
			return fmt.Errorf("%w: Resolve - load slot: %v", ErrInternal, err)
		}

		if err := s.settleFund(ctx, dispute, slot, outcome, fundStatus); err != nil {
			return err
		}

		if slot.Status != slotStatus {
			if err := s.bookingRepo.UpdateSlotStatus(ctx, slot.ID, slotStatus); err != nil {
				return fmt.Errorf("%w: Resolve - update slot status: %v", ErrInternal, err)
			}
			slot.Status = slotStatus
		}

		now := s.timeProvider.Now()
		if err := s.disputeRepo.Resolve(ctx, disputeID, disputeStatus, req.Resolution, now); err != nil {
			return fmt.Errorf("%w: Resolve - close dispute: %v", ErrInternal, err)
		}

		return s.recalcBookingStatus(ctx, slot.BookingID)
	})

	if err != nil {
		if errors.Is(err, ErrDisputeNotFound) || errors.Is(err, ErrAlreadyResolved) ||
			errors.Is(err, ErrInvalidOutcome) {
			s.logger.Warn("Resolve: dispute id=%d: %v", disputeID, err)
			return err
		}
		s.logger.Error("Resolve: dispute id=%d: %v", disputeID, err)
		return err
	}

	s.logger.Info("Resolve: dispute id=%d resolved with outcome=%s", disputeID, req.Outcome)
	return nil
}

// settleFund применяет денежную часть резолюции
// Для draw и withdrawn внешних денежных операций нет - меняется
// только статус эскроу-записи
func (s *Service) settleFund(ctx context.Context, dispute *domain.Dispute, slot *domain.BookedSlot, outcome domain.DisputeOutcome, fundStatus domain.HeldFundStatus) error {
	if slot.Fund == nil || slot.Fund.Status == fundStatus {
		return nil
	}

	switch outcome {
	case domain.OutcomeLearnerWin:
		if err := s.paymentClient.RefundToLearner(ctx, slot.Fund.ID, dispute.CaseNumber); err != nil {
			return s.wrapPaymentError(slot.Fund.ID, err)
		}
	case domain.OutcomeTutorWin:
		if err := s.paymentClient.ReturnToTutorAccount(ctx, slot.Fund.ID, dispute.CaseNumber); err != nil {
			return s.wrapPaymentError(slot.Fund.ID, err)
		}
	case domain.OutcomeDraw, domain.OutcomeWithdrawn:
		// Деньги не двигаются: для draw раздел определяется вручную,
		// для withdrawn средства возвращаются на обычный таймер
	}

	if err := s.bookingRepo.UpdateFundStatus(ctx, slot.Fund.ID, fundStatus); err != nil {
		return fmt.Errorf("%w: settleFund - update fund status: %v", ErrInternal, err)
	}
	slot.Fund.Status = fundStatus

	return nil
}

func (s *Service) wrapPaymentError(fundID int64, err error) error {
	if errors.Is(err, paymentClient.ErrServiceUnavailable) {
		return fmt.Errorf("%w: fund id=%d: %v", ErrPaymentUnavailable, fundID, err)
	}
	return fmt.Errorf("%w: fund id=%d: %v", ErrInternal, fundID, err)
}

// recalcBookingStatus пересчитывает агрегатный статус бронирования
// после изменения статусов занятий и споров
func (s *Service) recalcBookingStatus(ctx context.Context, bookingID int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("%w: recalcBookingStatus - load booking: %v", ErrInternal, err)
	}

	openDisputes, err := s.disputeRepo.ListOpenByBookingID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("%w: recalcBookingStatus - load disputes: %v", ErrInternal, err)
	}

	openBySlot := make(map[int64]bool, len(openDisputes))
	for _, d := range openDisputes {
		openBySlot[d.BookedSlotID] = true
	}

	status := domain.DeriveBookingStatus(booking.Slots, func(slotID int64) bool {
		return openBySlot[slotID]
	})

	if status == booking.Status {
		return nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return fmt.Errorf("%w: recalcBookingStatus - update status: %v", ErrInternal, err)
	}

	return nil
}
