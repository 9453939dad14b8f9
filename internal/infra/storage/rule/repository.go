package rule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/dbmetrics"
	"github.com/mudasar10147/sportsarena-backend/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий правил доступности
// Правила создаются администрированием кортов; движок их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByCourtAndDay получает активные правила корта на день недели,
// отсортированные по началу интервала
// Корректность границ здесь не проверяется: валидация и пропуск битых
// правил — ответственность генератора доступности
func (r *Repository) GetActiveByCourtAndDay(ctx context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"court_id",
		"day_of_week",
		"start_minute",
		"end_minute",
		"price_override",
		"active",
	).
		From("availability_rules").
		Where(squirrel.Eq{
			"court_id":    courtID,
			"day_of_week": dayOfWeek,
			"active":      true,
		}).
		OrderBy("start_minute ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		err := rows.Scan(
			&rule.ID,
			&rule.CourtID,
			&rule.DayOfWeek,
			&rule.StartMinute,
			&rule.EndMinute,
			&rule.PriceOverride,
			&rule.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
