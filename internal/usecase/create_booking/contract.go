package create_booking

import (
	"context"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
	LockForBooking(ctx context.Context, id int64) (*domain.Court, error)
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	GetActiveByCourtAndDay(ctx context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockOverlapping(ctx context.Context, courtID int64, date time.Time, startMinute, endMinute int, now time.Time) (*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// BlockedRepository интерфейс репозитория административных блокировок
type BlockedRepository interface {
	LockBlocking(ctx context.Context, courtID, facilityID int64, date time.Time, startMinute, endMinute int) (*domain.BlockedRange, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetResolvedPolicy(ctx context.Context, courtID, facilityID int64) (domain.BookingPolicy, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}
