package policy

import (
	"context"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetResolvedPolicy(ctx context.Context, courtID, facilityID int64) (domain.BookingPolicy, error)
	GetCourtOverride(ctx context.Context, courtID int64) (*domain.PolicyOverride, error)
	UpsertCourtOverride(ctx context.Context, override *domain.PolicyOverride) (*domain.PolicyOverride, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
