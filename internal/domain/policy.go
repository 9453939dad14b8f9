package domain

// BookingPolicy действующая политика бронирования корта
// После разрешения иерархии (корт → комплекс → системные дефолты)
// каждое поле имеет конкретное значение
type BookingPolicy struct {
	MaxAdvanceBookingDays   int
	MinDurationMinutes      int
	MaxDurationMinutes      int
	BufferMinutes           int
	MinAdvanceNoticeMinutes int
	PendingExpirationHours  int
}

// SystemDefaults системные значения политики, задаются конфигурацией
// сервиса и внедряются в разрешение политики явно — без глобального
// изменяемого состояния
type SystemDefaults struct {
	MaxAdvanceBookingDays   int
	MinDurationMinutes      int
	MaxDurationMinutes      int
	BufferMinutes           int
	MinAdvanceNoticeMinutes int
	PendingExpirationHours  int
}

// Policy возвращает политику, собранную целиком из дефолтов
func (d SystemDefaults) Policy() BookingPolicy {
	return BookingPolicy{
		MaxAdvanceBookingDays:   d.MaxAdvanceBookingDays,
		MinDurationMinutes:      d.MinDurationMinutes,
		MaxDurationMinutes:      d.MaxDurationMinutes,
		BufferMinutes:           d.BufferMinutes,
		MinAdvanceNoticeMinutes: d.MinAdvanceNoticeMinutes,
		PendingExpirationHours:  d.PendingExpirationHours,
	}
}

// PolicyOverride частичное переопределение политики на уровне корта
// или комплекса; nil-поле означает "взять значение уровнем ниже"
type PolicyOverride struct {
	ID         int64
	FacilityID *int64
	CourtID    *int64

	MaxAdvanceBookingDays   *int
	MinDurationMinutes      *int
	MaxDurationMinutes      *int
	BufferMinutes           *int
	MinAdvanceNoticeMinutes *int
	PendingExpirationHours  *int
}

// ResolvePolicy собирает действующую политику по приоритету:
// значение корта перекрывает значение комплекса, оно — системный дефолт
// Любой из override может быть nil
func ResolvePolicy(defaults SystemDefaults, facility, court *PolicyOverride) BookingPolicy {
	policy := defaults.Policy()
	applyOverride(&policy, facility)
	applyOverride(&policy, court)
	return policy
}

func applyOverride(policy *BookingPolicy, o *PolicyOverride) {
	if o == nil {
		return
	}
	if o.MaxAdvanceBookingDays != nil {
		policy.MaxAdvanceBookingDays = *o.MaxAdvanceBookingDays
	}
	if o.MinDurationMinutes != nil {
		policy.MinDurationMinutes = *o.MinDurationMinutes
	}
	if o.MaxDurationMinutes != nil {
		policy.MaxDurationMinutes = *o.MaxDurationMinutes
	}
	if o.BufferMinutes != nil {
		policy.BufferMinutes = *o.BufferMinutes
	}
	if o.MinAdvanceNoticeMinutes != nil {
		policy.MinAdvanceNoticeMinutes = *o.MinAdvanceNoticeMinutes
	}
	if o.PendingExpirationHours != nil {
		policy.PendingExpirationHours = *o.PendingExpirationHours
	}
}
