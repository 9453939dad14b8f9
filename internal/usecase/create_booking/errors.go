package create_booking

import (
	"errors"
	"fmt"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

var (
	ErrInvalidInput          = errors.New("create_booking.usecase: invalid input")
	ErrInvalidTimeRange      = errors.New("create_booking.usecase: invalid time range")
	ErrCourtNotFound         = errors.New("create_booking.usecase: court not found")
	ErrCourtInactive         = errors.New("create_booking.usecase: court is inactive")
	ErrPastDate              = errors.New("create_booking.usecase: date is in the past")
	ErrAdvanceWindowExceeded = errors.New("create_booking.usecase: date exceeds advance booking window")
	ErrInsufficientNotice    = errors.New("create_booking.usecase: insufficient notice before start")
	ErrDurationOutOfRange    = errors.New("create_booking.usecase: duration out of range")
	ErrOutsideAvailability   = errors.New("create_booking.usecase: requested time is outside availability")
	ErrBookingConflict       = errors.New("create_booking.usecase: time range conflicts with existing reservation")
	ErrTimeBlocked           = errors.New("create_booking.usecase: time range is administratively blocked")
	ErrLockTimeout           = errors.New("create_booking.usecase: lock wait timeout, retry later")
	ErrInternal              = errors.New("create_booking.usecase: internal error")
)

// ConflictError конфликт с существующим бронированием
// Раскрывается в ErrBookingConflict через errors.Is
type ConflictError struct {
	ReservationID int64
	StartMinute   int
	EndMinute     int
	Status        domain.ReservationStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: reservation id=%d [%d, %d) status=%s",
		ErrBookingConflict, e.ReservationID, e.StartMinute, e.EndMinute, e.Status)
}

func (e *ConflictError) Unwrap() error {
	return ErrBookingConflict
}

// BlockedError пересечение с административной блокировкой времени
// Раскрывается в ErrTimeBlocked через errors.Is
type BlockedError struct {
	RangeID int64
	Kind    domain.BlockKind
	Reason  string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%v: blocked range id=%d kind=%s reason=%q",
		ErrTimeBlocked, e.RangeID, e.Kind, e.Reason)
}

func (e *BlockedError) Unwrap() error {
	return ErrTimeBlocked
}
