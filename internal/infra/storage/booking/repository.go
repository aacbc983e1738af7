package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TutoringService/internal/domain"
	"github.com/m04kA/SMC-TutoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TutoringService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями, их занятиями
// и эскроу-записями средств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование со всеми занятиями и эскроу-записями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"learner_id",
		"tutor_id",
		"lesson_id",
		"status",
		"total_price",
		"lesson_name",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: статусные переходы не должны гоняться
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.LearnerID,
		&booking.TutorID,
		&booking.LessonID,
		&booking.Status,
		&booking.TotalPrice,
		&booking.LessonName,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	slots, err := r.getSlotsByBookingID(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	booking.Slots = slots

	return &booking, nil
}

// List получает страницу бронирований по фильтру и общее число записей
// Занятия в список не подгружаются - полный состав отдаёт GetByID
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countBuilder := psqlbuilder.Select("COUNT(*)").From("bookings")
	listBuilder := psqlbuilder.Select(
		"id",
		"learner_id",
		"tutor_id",
		"lesson_id",
		"status",
		"total_price",
		"lesson_name",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(filter.PageSize)).
		Offset(filter.Offset())

	if filter.LearnerID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"learner_id": *filter.LearnerID})
		listBuilder = listBuilder.Where(squirrel.Eq{"learner_id": *filter.LearnerID})
	}
	if filter.TutorID != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"tutor_id": *filter.TutorID})
		listBuilder = listBuilder.Where(squirrel.Eq{"tutor_id": *filter.TutorID})
	}
	if filter.Status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *filter.Status})
		listBuilder = listBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan total: %v", ErrScanRow, err)
	}

	query, args, err = listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.LearnerID,
			&booking.TutorID,
			&booking.LessonID,
			&booking.Status,
			&booking.TotalPrice,
			&booking.LessonName,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, total, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины и времени отмены,
// переводя все неконечные занятия в cancelled
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	query, args, err = psqlbuilder.Update("booked_slots").
		Set("status", domain.SlotStatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"booking_id": id,
			"status":     []domain.SlotStatus{domain.SlotStatusPending, domain.SlotStatusAwaitingConfirmation},
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build slots update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Cancel - execute slots update: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSlotByID получает занятие бронирования вместе с эскроу-записью
func (r *Repository) GetSlotByID(ctx context.Context, slotID int64) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"bs.id",
		"bs.booking_id",
		"bs.booked_date",
		"bs.slot_index",
		"bs.status",
		"bs.note",
		"bs.created_at",
		"bs.updated_at",
		"hf.id",
		"hf.booked_slot_id",
		"hf.amount",
		"hf.status",
		"hf.created_at",
		"hf.updated_at",
	).
		From("booked_slots bs").
		LeftJoin("held_funds hf ON hf.booked_slot_id = bs.id").
		Where(squirrel.Eq{"bs.id": slotID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF bs")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetActiveSlotsInRange получает активные занятия репетитора в диапазоне дат
// Отменённые занятия место в календаре не занимают
func (r *Repository) GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to time.Time) ([]*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"bs.id",
		"bs.booking_id",
		"bs.booked_date",
		"bs.slot_index",
		"bs.status",
		"bs.note",
		"bs.created_at",
		"bs.updated_at",
	).
		From("booked_slots bs").
		Join("bookings b ON b.id = bs.booking_id").
		Where(squirrel.Eq{"b.tutor_id": tutorID}).
		Where(squirrel.GtOrEq{"bs.booked_date": from}).
		Where(squirrel.LtOrEq{"bs.booked_date": to}).
		Where(squirrel.NotEq{"bs.status": []domain.SlotStatus{
			domain.SlotStatusCancelled,
			domain.SlotStatusCancelledDisputed,
		}}).
		OrderBy("bs.booked_date ASC, bs.slot_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlotsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlotsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BookedSlot, 0)
	for rows.Next() {
		var slot domain.BookedSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.BookingID,
			&slot.BookedDate,
			&slot.SlotIndex,
			&slot.Status,
			&slot.Note,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveSlotsInRange - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlotsInRange - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// UpdateSlotStatus обновляет статус занятия
func (r *Repository) UpdateSlotStatus(ctx context.Context, slotID int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booked_slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateSlotSchedule переносит занятие на новые дату и индекс слота
// Используется при акцепте запроса на перенос
func (r *Repository) UpdateSlotSchedule(ctx context.Context, slotID int64, bookedDate time.Time, slotIndex domain.SlotIndex) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booked_slots").
		Set("booked_date", bookedDate).
		Set("slot_index", slotIndex).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlotSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateFundStatus обновляет статус эскроу-записи
func (r *Repository) UpdateFundStatus(ctx context.Context, fundID int64, status domain.HeldFundStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("held_funds").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": fundID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateFundStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateFundStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateFundStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFundNotFound
	}

	return nil
}

// getSlotsByBookingID получает занятия бронирования с эскроу-записями
func (r *Repository) getSlotsByBookingID(ctx context.Context, executor DBExecutor, bookingID int64) ([]*domain.BookedSlot, error) {
	query, args, err := psqlbuilder.Select(
		"bs.id",
		"bs.booking_id",
		"bs.booked_date",
		"bs.slot_index",
		"bs.status",
		"bs.note",
		"bs.created_at",
		"bs.updated_at",
		"hf.id",
		"hf.booked_slot_id",
		"hf.amount",
		"hf.status",
		"hf.created_at",
		"hf.updated_at",
	).
		From("booked_slots bs").
		LeftJoin("held_funds hf ON hf.booked_slot_id = bs.id").
		Where(squirrel.Eq{"bs.booking_id": bookingID}).
		OrderBy("bs.booked_date ASC, bs.slot_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSlotsByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSlotsByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BookedSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: getSlotsByBookingID - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSlotsByBookingID - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует занятие с опциональной эскроу-записью (LEFT JOIN)
func scanSlot(row rowScanner) (*domain.BookedSlot, error) {
	var slot domain.BookedSlot
	var createdAt, updatedAt sql.NullTime

	var fundID, fundSlotID sql.NullInt64
	var fundAmount sql.NullFloat64
	var fundStatus sql.NullString
	var fundCreatedAt, fundUpdatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.BookingID,
		&slot.BookedDate,
		&slot.SlotIndex,
		&slot.Status,
		&slot.Note,
		&createdAt,
		&updatedAt,
		&fundID,
		&fundSlotID,
		&fundAmount,
		&fundStatus,
		&fundCreatedAt,
		&fundUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	if fundID.Valid {
		slot.Fund = &domain.HeldFund{
			ID:           fundID.Int64,
			BookedSlotID: fundSlotID.Int64,
			Amount:       fundAmount.Float64,
			Status:       domain.HeldFundStatus(fundStatus.String),
			CreatedAt:    fundCreatedAt.Time,
			UpdatedAt:    fundUpdatedAt.Time,
		}
	}

	return &slot, nil
}
