package pattern

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

// Repository репозиторий шаблонов недельной доступности
// Шаблоны версионируются: новая публикация добавляет версию, старые
// остаются для уже рассчитанных недель
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую версию шаблона с набором открытых слотов по дням
func (r *Repository) Create(ctx context.Context, pattern *domain.WeeklyAvailabilityPattern) (*domain.WeeklyAvailabilityPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_patterns").
		Columns("tutor_id", "applied_from").
		Values(pattern.TutorID, pattern.AppliedFrom).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&pattern.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	pattern.CreatedAt = createdAt.Time

	insertBuilder := psqlbuilder.Insert("pattern_slots").
		Columns("pattern_id", "weekday", "slot_index")

	hasSlots := false
	for weekday, indexes := range pattern.Days {
		for _, index := range indexes {
			insertBuilder = insertBuilder.Values(pattern.ID, int(weekday), index)
			hasSlots = true
		}
	}

	// Шаблон без единого слота допустим: репетитор закрыл всю неделю
	if !hasSlots {
		return pattern, nil
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build slots insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute slots insert: %v", ErrExecQuery, err)
	}

	return pattern, nil
}

// GetAllByTutor получает все версии шаблонов репетитора
// Выбор активной версии для недели делает domain.ResolvePattern
func (r *Repository) GetAllByTutor(ctx context.Context, tutorID int64) ([]*domain.WeeklyAvailabilityPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tutor_id", "applied_from", "created_at").
		From("weekly_patterns").
		Where(squirrel.Eq{"tutor_id": tutorID}).
		OrderBy("applied_from DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTutor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTutor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	patterns := make([]*domain.WeeklyAvailabilityPattern, 0)
	byID := make(map[int64]*domain.WeeklyAvailabilityPattern)

	for rows.Next() {
		var p domain.WeeklyAvailabilityPattern
		var appliedFrom time.Time
		var createdAt sql.NullTime

		if err := rows.Scan(&p.ID, &p.TutorID, &appliedFrom, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetAllByTutor - scan pattern: %v", ErrScanRow, err)
		}

		p.AppliedFrom = appliedFrom
		p.CreatedAt = createdAt.Time
		p.Days = make(map[time.Weekday][]domain.SlotIndex)

		patterns = append(patterns, &p)
		byID[p.ID] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByTutor - rows error: %v", ErrScanRow, err)
	}

	if len(patterns) == 0 {
		return patterns, nil
	}

	ids := make([]int64, 0, len(patterns))
	for _, p := range patterns {
		ids = append(ids, p.ID)
	}

	query, args, err = psqlbuilder.Select("pattern_id", "weekday", "slot_index").
		From("pattern_slots").
		Where(squirrel.Eq{"pattern_id": ids}).
		OrderBy("pattern_id ASC, weekday ASC, slot_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTutor - build slots query: %v", ErrBuildQuery, err)
	}

	slotRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTutor - execute slots query: %v", ErrExecQuery, err)
	}
	defer slotRows.Close()

	for slotRows.Next() {
		var patternID int64
		var weekday int
		var index domain.SlotIndex

		if err := slotRows.Scan(&patternID, &weekday, &index); err != nil {
			return nil, fmt.Errorf("%w: GetAllByTutor - scan slot: %v", ErrScanRow, err)
		}

		p := byID[patternID]
		p.Days[time.Weekday(weekday)] = append(p.Days[time.Weekday(weekday)], index)
	}

	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByTutor - slot rows error: %v", ErrScanRow, err)
	}

	return patterns, nil
}
