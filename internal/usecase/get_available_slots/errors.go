package get_available_slots

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("get_available_slots: court not found")

	// ErrCourtInactive возвращается, когда корт деактивирован
	ErrCourtInactive = errors.New("get_available_slots: court is inactive")

	// ErrPastDate возвращается для даты в прошлом
	ErrPastDate = errors.New("get_available_slots: date is in the past")

	// ErrAdvanceWindowExceeded возвращается, когда дата превышает
	// maxAdvanceBookingDays политики
	ErrAdvanceWindowExceeded = errors.New("get_available_slots: date exceeds advance booking window")

	// ErrInvalidDuration возвращается, когда длительность не положительна
	// или не кратна 30 минутам
	ErrInvalidDuration = errors.New("get_available_slots: duration must be a positive multiple of 30 minutes")

	// ErrDurationOutOfRange возвращается, когда длительность вне границ политики
	ErrDurationOutOfRange = errors.New("get_available_slots: duration is outside policy bounds")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
