package blocked

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/dbmetrics"
	"github.com/mudasar10147/sportsarena-backend/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var blockedColumns = []string{
	"id",
	"facility_id",
	"court_id",
	"kind",
	"block_date",
	"start_date",
	"end_date",
	"day_of_week",
	"start_minute",
	"end_minute",
	"reason",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий административных блокировок времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveForDate получает активные блокировки, действующие на корт
// в указанную дату: адресованные корту напрямую либо всему комплексу
func (r *Repository) GetActiveForDate(ctx context.Context, courtID, facilityID int64, date time.Time) ([]*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseQuery(courtID, facilityID, date).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDate - execute query: %v", wrapExecErr(err), err)
	}
	defer rows.Close()

	return r.scanBlockedRanges(rows)
}

// LockBlocking выполняет блокирующее чтение (FOR UPDATE) блокировок,
// пересекающих окно [startMinute, endMinute) в указанную дату
// Возвращает первую найденную блокировку или nil
// Вызывается только внутри транзакции создания бронирования, последним
// в порядке взятия блокировок (корт → бронирования → блокировки)
func (r *Repository) LockBlocking(ctx context.Context, courtID, facilityID int64, date time.Time, startMinute, endMinute int) (*domain.BlockedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseQuery(courtID, facilityID, date).
		// Отсутствие окна означает весь день: COALESCE к [0, 1440)
		Where(squirrel.Expr("COALESCE(start_minute, 0) < ?", endMinute)).
		Where(squirrel.Expr("COALESCE(end_minute, ?) > ?", domain.MinutesPerDay, startMinute)).
		OrderBy("id ASC").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LockBlocking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LockBlocking - execute query: %v", wrapExecErr(err), err)
	}
	defer rows.Close()

	ranges, err := r.scanBlockedRanges(rows)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, nil
	}
	return ranges[0], nil
}

// baseQuery общее условие применимости блокировки к (корт, дата):
// one_time по дате, recurring по дню недели, date_range по диапазону дат
func (r *Repository) baseQuery(courtID, facilityID int64, date time.Time) squirrel.SelectBuilder {
	dayOfWeek := int(date.Weekday())

	return psqlbuilder.Select(blockedColumns...).
		From("blocked_ranges").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"court_id": courtID},
			squirrel.And{
				squirrel.Eq{"court_id": nil},
				squirrel.Eq{"facility_id": facilityID},
			},
		}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"kind": domain.BlockOneTime},
				squirrel.Eq{"block_date": date},
			},
			squirrel.And{
				squirrel.Eq{"kind": domain.BlockRecurring},
				squirrel.Eq{"day_of_week": dayOfWeek},
			},
			squirrel.And{
				squirrel.Eq{"kind": domain.BlockDateRange},
				squirrel.LtOrEq{"start_date": date},
				squirrel.GtOrEq{"end_date": date},
			},
		})
}

func wrapExecErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "55P03" {
		return ErrLockTimeout
	}
	return ErrExecQuery
}

// scanBlockedRanges сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlockedRanges(rows *sql.Rows) ([]*domain.BlockedRange, error) {
	ranges := make([]*domain.BlockedRange, 0)

	for rows.Next() {
		var blockedRange domain.BlockedRange
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&blockedRange.ID,
			&blockedRange.FacilityID,
			&blockedRange.CourtID,
			&blockedRange.Kind,
			&blockedRange.Date,
			&blockedRange.StartDate,
			&blockedRange.EndDate,
			&blockedRange.DayOfWeek,
			&blockedRange.StartMinute,
			&blockedRange.EndMinute,
			&blockedRange.Reason,
			&blockedRange.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockedRanges - scan row: %v", ErrScanRow, err)
		}

		blockedRange.CreatedAt = createdAt.Time
		blockedRange.UpdatedAt = updatedAt.Time

		ranges = append(ranges, &blockedRange)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}
