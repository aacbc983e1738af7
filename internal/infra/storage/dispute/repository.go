package dispute

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

// Repository репозиторий споров по занятиям
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория споров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает спор
func (r *Repository) Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("disputes").
		Columns("case_number", "booked_slot_id", "learner_id", "learner_reason", "status").
		Values(dispute.CaseNumber, dispute.BookedSlotID, dispute.LearnerID, dispute.LearnerReason, dispute.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&dispute.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	dispute.CreatedAt = createdAt.Time

	return dispute, nil
}

// GetByID получает спор по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Dispute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectDisputes().Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	dispute, err := scanDispute(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDisputeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan dispute: %v", ErrScanRow, err)
	}

	return dispute, nil
}

// Resolve переводит спор в конечный статус с текстом резолюции
func (r *Repository) Resolve(ctx context.Context, id int64, status domain.DisputeStatus, resolution string, resolvedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("disputes").
		Set("status", status).
		Set("resolution", resolution).
		Set("resolved_at", resolvedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDisputeNotFound
	}

	return nil
}

// HasOpenBySlotID проверяет наличие открытого спора по занятию
func (r *Repository) HasOpenBySlotID(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("disputes").
		Where(squirrel.Eq{
			"booked_slot_id": slotID,
			"status": []domain.DisputeStatus{
				domain.DisputePendingReconciliation,
				domain.DisputeAwaitingStaffReview,
			},
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOpenBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOpenBySlotID - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// ListOpenByBookingID получает открытые споры по всем занятиям бронирования
// Используется при выводе агрегатного статуса бронирования
func (r *Repository) ListOpenByBookingID(ctx context.Context, bookingID int64) ([]*domain.Dispute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"d.id",
		"d.case_number",
		"d.booked_slot_id",
		"d.learner_id",
		"d.learner_reason",
		"d.status",
		"d.resolution",
		"d.created_at",
		"d.resolved_at",
	).
		From("disputes d").
		Join("booked_slots bs ON bs.id = d.booked_slot_id").
		Where(squirrel.Eq{
			"bs.booking_id": bookingID,
			"d.status": []domain.DisputeStatus{
				domain.DisputePendingReconciliation,
				domain.DisputeAwaitingStaffReview,
			},
		}).
		OrderBy("d.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	disputes := make([]*domain.Dispute, 0)
	for rows.Next() {
		dispute, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOpenByBookingID - scan row: %v", ErrScanRow, err)
		}
		disputes = append(disputes, dispute)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenByBookingID - rows error: %v", ErrScanRow, err)
	}

	return disputes, nil
}

func selectDisputes() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"case_number",
		"booked_slot_id",
		"learner_id",
		"learner_reason",
		"status",
		"resolution",
		"created_at",
		"resolved_at",
	).From("disputes")
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDispute(row rowScanner) (*domain.Dispute, error) {
	var dispute domain.Dispute
	var createdAt sql.NullTime

	err := row.Scan(
		&dispute.ID,
		&dispute.CaseNumber,
		&dispute.BookedSlotID,
		&dispute.LearnerID,
		&dispute.LearnerReason,
		&dispute.Status,
		&dispute.Resolution,
		&createdAt,
		&dispute.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	dispute.CreatedAt = createdAt.Time

	return &dispute, nil
}
