package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/dbmetrics"
	"github.com/mudasar10147/sportsarena-backend/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var overrideColumns = []string{
	"id",
	"facility_id",
	"court_id",
	"max_advance_booking_days",
	"min_duration_minutes",
	"max_duration_minutes",
	"buffer_minutes",
	"min_advance_notice_minutes",
	"pending_expiration_hours",
}

// Repository репозиторий переопределений политики бронирования
// Иерархия разрешения: переопределение корта → переопределение комплекса →
// системные дефолты; nil-поля переопределения берут значение уровнем ниже
type Repository struct {
	db       DBExecutor
	defaults domain.SystemDefaults
}

// NewRepository создает новый экземпляр репозитория политик
// Системные дефолты внедряются явно из конфигурации
func NewRepository(db DBExecutor, defaults domain.SystemDefaults) *Repository {
	return &Repository{db: db, defaults: defaults}
}

// GetResolvedPolicy возвращает действующую политику корта
// Каждое поле результата гарантированно имеет конкретное значение
func (r *Repository) GetResolvedPolicy(ctx context.Context, courtID, facilityID int64) (domain.BookingPolicy, error) {
	courtOverride, err := r.getOverride(ctx, squirrel.Eq{"court_id": courtID})
	if err != nil && !errors.Is(err, ErrOverrideNotFound) {
		return domain.BookingPolicy{}, fmt.Errorf("%w: GetResolvedPolicy - court level: %v", ErrExecQuery, err)
	}

	facilityOverride, err := r.getOverride(ctx, squirrel.And{
		squirrel.Eq{"facility_id": facilityID},
		squirrel.Eq{"court_id": nil},
	})
	if err != nil && !errors.Is(err, ErrOverrideNotFound) {
		return domain.BookingPolicy{}, fmt.Errorf("%w: GetResolvedPolicy - facility level: %v", ErrExecQuery, err)
	}

	return domain.ResolvePolicy(r.defaults, facilityOverride, courtOverride), nil
}

// GetCourtOverride возвращает переопределение политики уровня корта
func (r *Repository) GetCourtOverride(ctx context.Context, courtID int64) (*domain.PolicyOverride, error) {
	return r.getOverride(ctx, squirrel.Eq{"court_id": courtID})
}

// UpsertCourtOverride создает или обновляет переопределение политики корта
func (r *Repository) UpsertCourtOverride(ctx context.Context, override *domain.PolicyOverride) (*domain.PolicyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"facility_id",
			"court_id",
			"max_advance_booking_days",
			"min_duration_minutes",
			"max_duration_minutes",
			"buffer_minutes",
			"min_advance_notice_minutes",
			"pending_expiration_hours",
		).
		Values(
			override.FacilityID,
			override.CourtID,
			override.MaxAdvanceBookingDays,
			override.MinDurationMinutes,
			override.MaxDurationMinutes,
			override.BufferMinutes,
			override.MinAdvanceNoticeMinutes,
			override.PendingExpirationHours,
		).
		Suffix(`ON CONFLICT (court_id) WHERE court_id IS NOT NULL DO UPDATE SET
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			min_duration_minutes = EXCLUDED.min_duration_minutes,
			max_duration_minutes = EXCLUDED.max_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			min_advance_notice_minutes = EXCLUDED.min_advance_notice_minutes,
			pending_expiration_hours = EXCLUDED.pending_expiration_hours,
			updated_at = NOW()
		RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertCourtOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertCourtOverride - execute upsert: %v", ErrExecQuery, err)
	}

	return override, nil
}

func (r *Repository) getOverride(ctx context.Context, where squirrel.Sqlizer) (*domain.PolicyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("booking_policies").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOverride - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.PolicyOverride

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&override.FacilityID,
		&override.CourtID,
		&override.MaxAdvanceBookingDays,
		&override.MinDurationMinutes,
		&override.MaxDurationMinutes,
		&override.BufferMinutes,
		&override.MinAdvanceNoticeMinutes,
		&override.PendingExpirationHours,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOverride - scan override: %v", ErrScanRow, err)
	}

	return &override, nil
}
