package create_booking

import (
	"fmt"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Проверки без обращения к БД: fail fast до открытия транзакции
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.ValidMinuteRange(req.StartMinute, req.EndMinute) {
		return fmt.Errorf("%w: [%d, %d) is not a valid minute range", ErrInvalidTimeRange, req.StartMinute, req.EndMinute)
	}
	if !domain.AlignedToGranularity(req.StartMinute) || !domain.AlignedToGranularity(req.EndMinute) {
		return fmt.Errorf("%w: bounds must be aligned to %d minutes", ErrInvalidTimeRange, domain.GranularityMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateAgainstPolicy проверяет дату, длительность и заблаговременность
// против разрешенной политики корта
func validateAgainstPolicy(req *Request, now time.Time, policy domain.BookingPolicy) error {
	startsAt := startOfDay(req.Date).Add(time.Duration(req.StartMinute) * time.Minute)

	if startOfDay(req.Date).Before(startOfDay(now)) {
		return ErrPastDate
	}

	maxDate := startOfDay(now).AddDate(0, 0, policy.MaxAdvanceBookingDays)
	if startOfDay(req.Date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrAdvanceWindowExceeded, policy.MaxAdvanceBookingDays)
	}

	duration := req.EndMinute - req.StartMinute
	if duration < policy.MinDurationMinutes || duration > policy.MaxDurationMinutes {
		return fmt.Errorf("%w: duration %d is not within [%d, %d]",
			ErrDurationOutOfRange, duration, policy.MinDurationMinutes, policy.MaxDurationMinutes)
	}

	earliestStart := now.Add(time.Duration(policy.MinAdvanceNoticeMinutes) * time.Minute)
	if startsAt.Before(earliestStart) {
		return fmt.Errorf("%w: booking must start at least %d minutes from now",
			ErrInsufficientNotice, policy.MinAdvanceNoticeMinutes)
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
