package get_schedule_window

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutoringService/internal/domain"
)

// UseCase use case построения сетки доступности репетитора
type UseCase struct {
	patternRepo    PatternRepository
	bookingRepo    BookingRepository
	offerRepo      OfferRepository
	rescheduleRepo RescheduleRepository
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patternRepo PatternRepository,
	bookingRepo BookingRepository,
	offerRepo OfferRepository,
	rescheduleRepo RescheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		patternRepo:    patternRepo,
		bookingRepo:    bookingRepo,
		offerRepo:      offerRepo,
		rescheduleRepo: rescheduleRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute строит окно сетки доступности на диапазон дат
//
// Сетка производная и нигде не хранится: она собирается из шаблонов
// доступности, активных занятий, слотов неистёкших офферов и целевых
// слотов неотвеченных запросов переноса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetScheduleWindow: tutor=%d, range=%s..%s",
		req.TutorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetScheduleWindow: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Загружаем все версии шаблонов репетитора
	patterns, err := uc.patternRepo.GetAllByTutor(ctx, req.TutorID)
	if err != nil {
		uc.logger.Error("GetScheduleWindow: failed to get patterns: %v", err)
		return nil, fmt.Errorf("%w: failed to get patterns: %v", ErrInternal, err)
	}

	// 3. Собираем занятость из трёх источников
	occupied, err := uc.collectOccupancy(ctx, req, now)
	if err != nil {
		return nil, err
	}

	// 4. Строим сетку
	days, err := domain.BuildScheduleWindow(patterns, req.StartDate, req.EndDate, occupied, now)
	if err != nil {
		uc.logger.Error("GetScheduleWindow: failed to build window: %v", err)
		return nil, fmt.Errorf("%w: failed to build window: %v", ErrInternal, err)
	}

	uc.logger.Info("GetScheduleWindow: built %d days for tutor=%d", len(days), req.TutorID)
	return toResponse(req.TutorID, days), nil
}

// collectOccupancy собирает занятые слоты: активные занятия,
// слоты неистёкших офферов и целевые слоты pending-переносов
func (uc *UseCase) collectOccupancy(ctx context.Context, req *Request, now time.Time) ([]domain.OccupiedSlot, error) {
	bookedSlots, err := uc.bookingRepo.GetActiveSlotsInRange(ctx, req.TutorID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetScheduleWindow: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	// Диапазон по времени для таблиц с полным timestamp
	from := req.StartDate
	to := req.EndDate.AddDate(0, 0, 1)

	offeredSlots, err := uc.offerRepo.GetActiveSlotsInRange(ctx, req.TutorID, from, to, now)
	if err != nil {
		uc.logger.Error("GetScheduleWindow: failed to get offered slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get offered slots: %v", ErrInternal, err)
	}

	pendingTargets, err := uc.rescheduleRepo.GetPendingTargetsInRange(ctx, req.TutorID, from, to, now)
	if err != nil {
		uc.logger.Error("GetScheduleWindow: failed to get reschedule targets: %v", err)
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

	return occupied, nil
}

// toResponse конвертирует построенную сетку во внешний контракт
// Недоступные ячейки опускаются
func toResponse(tutorID int64, days []domain.DaySchedule) *Response {
	resp := &Response{
		TutorID: tutorID,
		Days:    make([]DayResponse, 0, len(days)),
	}

	for _, day := range days {
		dayResp := DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: make([]SlotCellResponse, 0),
		}

		for i, cell := range day.Cells {
			var occupancyType int
			switch cell.Status {
			case domain.CellAvailable:
				occupancyType = OccupancyTypeAvailable
			case domain.CellOnHold:
				occupancyType = OccupancyTypeOnHold
			case domain.CellBooked:
				occupancyType = OccupancyTypeBooked
			default:
				continue
			}

			dayResp.Slots = append(dayResp.Slots, SlotCellResponse{
				SlotIndex:     i,
				OccupancyType: occupancyType,
				OfferID:       cell.OfferID,
			})
		}

		resp.Days = append(resp.Days, dayResp)
	}

	return resp
}
