package court

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/dbmetrics"
	"github.com/mudasar10147/sportsarena-backend/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var courtColumns = []string{
	"id",
	"facility_id",
	"name",
	"hourly_price",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий кортов
// CRUD кортов вне движка; здесь только чтение и блокировка строки
// для транзакции создания бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кортов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает корт по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	return r.get(ctx, id, false)
}

// LockForBooking получает корт по ID с эксклюзивной блокировкой строки
// (FOR UPDATE). Строка корта блокируется первой — фиксированный порядок
// взятия блокировок (корт → бронирования → блокировки времени)
// исключает взаимные блокировки между параллельными транзакциями
func (r *Repository) LockForBooking(ctx context.Context, id int64) (*domain.Court, error) {
	return r.get(ctx, id, true)
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get - build select query: %v", ErrBuildQuery, err)
	}

	var court domain.Court
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&court.ID,
		&court.FacilityID,
		&court.Name,
		&court.HourlyPrice,
		&court.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "55P03" {
			return nil, fmt.Errorf("%w: get - lock court id=%d: %v", ErrLockTimeout, id, err)
		}
		return nil, fmt.Errorf("%w: get - scan court: %v", ErrScanRow, err)
	}

	court.CreatedAt = createdAt.Time
	court.UpdatedAt = updatedAt.Time

	return &court, nil
}
