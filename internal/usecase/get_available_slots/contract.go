package get_available_slots

import (
	"context"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	GetActiveByCourtAndDay(ctx context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetBlockingByCourtAndDate(ctx context.Context, courtID int64, date time.Time, now time.Time) ([]*domain.Reservation, error)
}

// BlockedRepository интерфейс репозитория административных блокировок
type BlockedRepository interface {
	GetActiveForDate(ctx context.Context, courtID, facilityID int64, date time.Time) ([]*domain.BlockedRange, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetResolvedPolicy(ctx context.Context, courtID, facilityID int64) (domain.BookingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
