package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutoringService/internal/infra/storage/booking"
	paymentClient "github.com/m04kA/SMC-TutoringService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-TutoringService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	disputeRepo   DisputeRepository
	paymentClient PaymentServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	disputeRepo DisputeRepository,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		disputeRepo:   disputeRepo,
		paymentClient: paymentClient,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// GetByID получает бронирование со всеми занятиями
// Доступно только участникам бронирования. Статус в ответе выводится
// из статусов занятий и открытых споров, хранимое поле не используется
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.LearnerID != userID && booking.TutorID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	status, err := s.deriveStatus(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d, derived status=%s", id, status)
	return models.FromDomainBooking(booking, status), nil
}

// List получает страницу бронирований пользователя в указанной роли
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d role=%s page=%d size=%d",
		req.UserID, req.Role, req.PageIndex, req.PageSize)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d of %d bookings for user=%d", len(bookings), total, req.UserID)
	return models.FromDomainBookingList(bookings, total), nil
}

// Cancel отменяет бронирование с обязательной причиной
// Все неконечные занятия отменяются, а их удержанные средства возвращаются
// ученику. Выполняется в одной транзакции: либо отменяется всё, либо ничего
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason == "" {
		s.logger.Warn("Cancel: empty reason for booking id=%d", bookingID)
		return ErrEmptyReason
	}
	if len(req.CancellationReason) > domain.MaxReasonLength {
		s.logger.Warn("Cancel: reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if booking.LearnerID != req.UserID && booking.TutorID != req.UserID {
			return ErrAccessDenied
		}

		now := s.timeProvider.Now()
		if err := booking.Cancel(req.CancellationReason, now); err != nil {
			switch {
			case errors.Is(err, domain.ErrEmptyReasonRequired):
				return ErrEmptyReason
			case errors.Is(err, domain.ErrBookingAlreadyTerminal):
				return ErrCannotCancel
			default:
				return fmt.Errorf("%w: Cancel - domain error: %v", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason, now); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return s.refundCancelledSlots(ctx, booking)
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAccessDenied) ||
			errors.Is(err, ErrCannotCancel) || errors.Is(err, ErrEmptyReason) {
			s.logger.Warn("Cancel: booking id=%d: %v", bookingID, err)
			return err
		}
		s.logger.Error("Cancel: booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// FinalizeSlot закрывает окно подтверждения занятия
//
// Вызывается внешним таймером спустя окно споров после завершения занятия:
// слот переводится в completed, удержанные средства уходят репетитору.
// Слот с открытым спором не финализируется до резолюции.
// Повторный вызов для уже завершённого слота - no-op
func (s *Service) FinalizeSlot(ctx context.Context, slotID int64) error {
	s.logger.Info("FinalizeSlot: finalizing slot id=%d", slotID)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slot, err := s.bookingRepo.GetSlotByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: FinalizeSlot - repository error: %v", ErrInternal, err)
		}

		if slot.Status == domain.SlotStatusCompleted {
			return nil
		}
		if slot.Status != domain.SlotStatusAwaitingConfirmation {
			return ErrSlotNotFinalizable
		}

		booking, err := s.bookingRepo.GetByID(ctx, slot.BookingID)
		if err != nil {
			return fmt.Errorf("%w: FinalizeSlot - load booking: %v", ErrInternal, err)
		}

		openDisputes, err := s.disputeRepo.ListOpenByBookingID(ctx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: FinalizeSlot - load disputes: %v", ErrInternal, err)
		}
		for _, d := range openDisputes {
			if d.BookedSlotID == slot.ID {
				return ErrSlotDisputed
			}
		}

		if slot.Fund != nil && slot.Fund.Status == domain.FundHeld {
			reference := fmt.Sprintf("slot-%d-release", slot.ID)
			if err := s.paymentClient.ReleaseToTutor(ctx, slot.Fund.ID, reference); err != nil {
				if errors.Is(err, paymentClient.ErrServiceUnavailable) {
					return fmt.Errorf("%w: release for fund id=%d: %v", ErrPaymentUnavailable, slot.Fund.ID, err)
				}
				return fmt.Errorf("%w: release for fund id=%d: %v", ErrInternal, slot.Fund.ID, err)
			}
			if err := s.bookingRepo.UpdateFundStatus(ctx, slot.Fund.ID, domain.FundReleasedToTutor); err != nil {
				return fmt.Errorf("%w: update fund id=%d status: %v", ErrInternal, slot.Fund.ID, err)
			}
		}

		if err := s.bookingRepo.UpdateSlotStatus(ctx, slot.ID, domain.SlotStatusCompleted); err != nil {
			return fmt.Errorf("%w: FinalizeSlot - update slot status: %v", ErrInternal, err)
		}

		for _, bs := range booking.Slots {
			if bs.ID == slot.ID {
				bs.Status = domain.SlotStatusCompleted
			}
		}

		status, err := s.deriveStatus(ctx, booking)
		if err != nil {
			return err
		}
		if status != booking.Status {
			if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
				return fmt.Errorf("%w: FinalizeSlot - update booking status: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrSlotNotFinalizable) ||
			errors.Is(err, ErrSlotDisputed) {
			s.logger.Warn("FinalizeSlot: slot id=%d: %v", slotID, err)
			return err
		}
		s.logger.Error("FinalizeSlot: slot id=%d: %v", slotID, err)
		return err
	}

	s.logger.Info("FinalizeSlot: slot id=%d finalized", slotID)
	return nil
}

// refundCancelledSlots возвращает ученику средства отменённых занятий
// Занятия, отменённые доменной моделью, к этому моменту уже имеют статус
// cancelled; возврат выполняется только для средств в статусе held
func (s *Service) refundCancelledSlots(ctx context.Context, booking *domain.Booking) error {
	reference := fmt.Sprintf("booking-%d-cancel", booking.ID)

	for _, slot := range booking.Slots {
		if slot.Status != domain.SlotStatusCancelled || slot.Fund == nil {
			continue
		}
		if slot.Fund.Status != domain.FundHeld {
			continue
		}

		if err := s.paymentClient.RefundToLearner(ctx, slot.Fund.ID, reference); err != nil {
			if errors.Is(err, paymentClient.ErrServiceUnavailable) {
				return fmt.Errorf("%w: refund for fund id=%d: %v", ErrPaymentUnavailable, slot.Fund.ID, err)
			}
			return fmt.Errorf("%w: refund for fund id=%d: %v", ErrInternal, slot.Fund.ID, err)
		}

		if err := s.bookingRepo.UpdateFundStatus(ctx, slot.Fund.ID, domain.FundRefundedToLearner); err != nil {
			return fmt.Errorf("%w: update fund id=%d status: %v", ErrInternal, slot.Fund.ID, err)
		}
	}

	return nil
}

// deriveStatus выводит агрегатный статус бронирования из статусов занятий
// и открытых споров
func (s *Service) deriveStatus(ctx context.Context, booking *domain.Booking) (domain.BookingStatus, error) {
	openDisputes, err := s.disputeRepo.ListOpenByBookingID(ctx, booking.ID)
	if err != nil {
		s.logger.Error("deriveStatus: dispute repository error for booking id=%d: %v", booking.ID, err)
		return "", fmt.Errorf("%w: deriveStatus - dispute repository error: %v", ErrInternal, err)
	}

	openBySlot := make(map[int64]bool, len(openDisputes))
	for _, d := range openDisputes {
		openBySlot[d.BookedSlotID] = true
	}

	return domain.DeriveBookingStatus(booking.Slots, func(slotID int64) bool {
		return openBySlot[slotID]
	}), nil
}
