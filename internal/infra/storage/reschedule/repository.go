package reschedule

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

// Repository репозиторий запросов на перенос занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переносов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запрос на перенос занятия
func (r *Repository) Create(ctx context.Context, request *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns("booked_slot_id", "reason", "new_slot_datetime", "new_slot_index", "status").
		Values(request.BookedSlotID, request.Reason, request.NewSlotDateTime, request.NewSlotIndex, request.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&request.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	request.CreatedAt = createdAt.Time

	return request, nil
}

// GetByID получает запрос на перенос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectRequests().Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetPendingBySlotID получает неотвеченный запрос по занятию
// На одно занятие одновременно допустим не более одного pending-запроса
func (r *Repository) GetPendingBySlotID(ctx context.Context, slotID int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRequests().
		Where(squirrel.Eq{
			"booked_slot_id": slotID,
			"status":         domain.ReschedulePendingResponse,
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingBySlotID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetPendingTargetsInRange получает pending-запросы репетитора, чьи целевые
// слоты попадают в диапазон. Целевые слоты удерживаются в сетке как занятые,
// пока окно ответа не истекло
func (r *Repository) GetPendingTargetsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	responseWindow := time.Duration(domain.RescheduleResponseHours) * time.Hour

	query, args, err := psqlbuilder.Select(
		"rr.id",
		"rr.booked_slot_id",
		"rr.reason",
		"rr.new_slot_datetime",
		"rr.new_slot_index",
		"rr.status",
		"rr.created_at",
		"rr.responded_at",
	).
		From("reschedule_requests rr").
		Join("booked_slots bs ON bs.id = rr.booked_slot_id").
		Join("bookings b ON b.id = bs.booking_id").
		Where(squirrel.Eq{
			"b.tutor_id": tutorID,
			"rr.status":  domain.ReschedulePendingResponse,
		}).
		Where(squirrel.Gt{"rr.created_at": now.Add(-responseWindow)}).
		Where(squirrel.GtOrEq{"rr.new_slot_datetime": from}).
		Where(squirrel.Lt{"rr.new_slot_datetime": to}).
		OrderBy("rr.new_slot_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingTargetsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingTargetsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.RescheduleRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPendingTargetsInRange - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPendingTargetsInRange - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// UpdateStatus обновляет статус запроса и время ответа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RescheduleStatus, respondedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", status).
		Set("responded_at", respondedAt).
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
		return ErrRequestNotFound
	}

	return nil
}

func selectRequests() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"booked_slot_id",
		"reason",
		"new_slot_datetime",
		"new_slot_index",
		"status",
		"created_at",
		"responded_at",
	).From("reschedule_requests")
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.RescheduleRequest, error) {
	var request domain.RescheduleRequest
	var createdAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.BookedSlotID,
		&request.Reason,
		&request.NewSlotDateTime,
		&request.NewSlotIndex,
		&request.Status,
		&createdAt,
		&request.RespondedAt,
	)
	if err != nil {
		return nil, err
	}

	request.CreatedAt = createdAt.Time

	return &request, nil
}
