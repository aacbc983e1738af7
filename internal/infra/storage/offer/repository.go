package offer

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

// Repository репозиторий офферов и их предложенных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория офферов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает оффер вместе с набором предложенных слотов
// Вызывается внутри транзакции: оффер без слотов недопустим
func (r *Repository) Create(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offers").
		Columns(
			"tutor_id",
			"learner_id",
			"lesson_id",
			"price_per_slot",
			"total_price",
			"duration_minutes",
			"expires_at",
		).
		Values(
			offer.TutorID,
			offer.LearnerID,
			offer.LessonID,
			offer.PricePerSlot,
			offer.TotalPrice,
			offer.DurationMinutes,
			offer.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&offer.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	offer.CreatedAt = createdAt.Time
	offer.UpdatedAt = updatedAt.Time

	if err := r.insertSlots(ctx, executor, offer); err != nil {
		return nil, err
	}

	return offer, nil
}

// GetByID получает оффер с предложенными слотами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tutor_id",
		"learner_id",
		"lesson_id",
		"price_per_slot",
		"total_price",
		"duration_minutes",
		"expires_at",
		"created_at",
		"updated_at",
	).
		From("offers").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var offer domain.Offer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offer.ID,
		&offer.TutorID,
		&offer.LearnerID,
		&offer.LessonID,
		&offer.PricePerSlot,
		&offer.TotalPrice,
		&offer.DurationMinutes,
		&offer.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan offer: %v", ErrScanRow, err)
	}

	offer.CreatedAt = createdAt.Time
	offer.UpdatedAt = updatedAt.Time

	query, args, err = psqlbuilder.Select("id", "offer_id", "slot_datetime", "slot_index").
		From("offered_slots").
		Where(squirrel.Eq{"offer_id": id}).
		OrderBy("slot_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build slots query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute slots query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot domain.OfferedSlot
		if err := rows.Scan(&slot.ID, &slot.OfferID, &slot.SlotDateTime, &slot.SlotIndex); err != nil {
			return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
		}
		offer.Slots = append(offer.Slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByID - slot rows error: %v", ErrScanRow, err)
	}

	return &offer, nil
}

// Update обновляет оффер и полностью заменяет набор предложенных слотов
// Вызывается внутри транзакции
func (r *Repository) Update(ctx context.Context, offer *domain.Offer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("offers").
		Set("price_per_slot", offer.PricePerSlot).
		Set("total_price", offer.TotalPrice).
		Set("expires_at", offer.ExpiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": offer.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOfferNotFound
	}

	query, args, err = psqlbuilder.Delete("offered_slots").
		Where(squirrel.Eq{"offer_id": offer.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build slots delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Update - execute slots delete: %v", ErrExecQuery, err)
	}

	return r.insertSlots(ctx, executor, offer)
}

// Delete удаляет оффер; предложенные слоты удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}

// GetActiveSlotsInRange получает слоты неистёкших офферов репетитора
// в диапазоне дат. Используется для пометки onhold в сетке доступности
func (r *Repository) GetActiveSlotsInRange(ctx context.Context, tutorID int64, from, to, now time.Time) ([]domain.OfferedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("os.id", "os.offer_id", "os.slot_datetime", "os.slot_index").
		From("offered_slots os").
		Join("offers o ON o.id = os.offer_id").
		Where(squirrel.Eq{"o.tutor_id": tutorID}).
		Where(squirrel.Gt{"o.expires_at": now}).
		Where(squirrel.GtOrEq{"os.slot_datetime": from}).
		Where(squirrel.Lt{"os.slot_datetime": to}).
		OrderBy("os.slot_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlotsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlotsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.OfferedSlot, 0)
	for rows.Next() {
		var slot domain.OfferedSlot
		if err := rows.Scan(&slot.ID, &slot.OfferID, &slot.SlotDateTime, &slot.SlotIndex); err != nil {
			return nil, fmt.Errorf("%w: GetActiveSlotsInRange - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveSlotsInRange - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, offer *domain.Offer) error {
	if len(offer.Slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("offered_slots").
		Columns("offer_id", "slot_datetime", "slot_index")

	for _, slot := range offer.Slots {
		insertBuilder = insertBuilder.Values(offer.ID, slot.SlotDateTime, slot.SlotIndex)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
