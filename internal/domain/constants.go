package domain

// Временная модель: сутки = 1440 минут, атомарная единица расписания = 30 минут
const (
	GranularityMinutes = 30
	MinutesPerDay      = 1440
)

// Default policy values (используются, когда ни корт, ни комплекс
// не переопределяют политику)
const (
	DefaultMaxAdvanceBookingDays   = 30
	DefaultMinDurationMinutes      = 60
	DefaultMaxDurationMinutes      = 300
	DefaultBufferMinutes           = 60
	DefaultMinAdvanceNoticeMinutes = 60
	DefaultPendingExpirationHours  = 12
)

// Business validation constants
const (
	MinAllowedDurationMinutes = GranularityMinutes
	MaxAllowedDurationMinutes = MinutesPerDay
	MaxAdvanceBookingDaysCap  = 365
	MaxNotesLength            = 500
	MaxReasonLength           = 500
	DefaultExpireBatchSize    = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых бронирование занимает слот
// pending учитывается только до истечения expires_at (ленивая фильтрация)
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// TerminalStatuses конечные статусы: из них переходов нет
var TerminalStatuses = []ReservationStatus{
	StatusRejected,
	StatusExpired,
	StatusCancelled,
	StatusCompleted,
}
