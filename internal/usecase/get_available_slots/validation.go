package get_available_slots

import (
	"fmt"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes%domain.GranularityMinutes != 0 {
		return ErrInvalidDuration
	}

	return nil
}

// validateDate проверяет, что дата внутри окна бронирования политики
func validateDate(date time.Time, now time.Time, maxAdvanceBookingDays int) error {
	if isDateInPast(date, now) {
		return ErrPastDate
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrAdvanceWindowExceeded, maxAdvanceBookingDays)
	}

	return nil
}

// validateDuration проверяет длительность против границ политики
func validateDuration(durationMinutes int, policy domain.BookingPolicy) error {
	if durationMinutes < policy.MinDurationMinutes || durationMinutes > policy.MaxDurationMinutes {
		return fmt.Errorf("%w: duration %d is not within [%d, %d]",
			ErrDurationOutOfRange, durationMinutes, policy.MinDurationMinutes, policy.MaxDurationMinutes)
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
