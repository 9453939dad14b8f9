package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRejected  ReservationStatus = "rejected"
	StatusExpired   ReservationStatus = "expired"
)

// Reservation represents a court reservation in the system
// Записи никогда не удаляются физически — только переводятся по статусам
type Reservation struct {
	ID          int64
	UserID      int64
	CourtID     int64
	Date        time.Time // дата бронирования без времени
	StartMinute int
	EndMinute   int
	Status      ReservationStatus
	Price       float64
	ExpiresAt   *time.Time // дедлайн подтверждения для pending

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes возвращает длительность бронирования в минутах
func (r *Reservation) DurationMinutes() int {
	return r.EndMinute - r.StartMinute
}

// IsTerminal returns true if no further transitions are possible
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case StatusRejected, StatusExpired, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsExpired returns true for a pending reservation whose confirmation
// deadline has passed
func (r *Reservation) IsExpired(now time.Time) bool {
	return r.Status == StatusPending && r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}

// BlocksAvailability returns true if the reservation occupies its time range
// Просроченные pending исключаются до того, как фоновая чистка переведет их
// в expired — корректность не зависит от фонового процесса
func (r *Reservation) BlocksAvailability(now time.Time) bool {
	switch r.Status {
	case StatusConfirmed, StatusCompleted:
		return true
	case StatusPending:
		return !r.IsExpired(now)
	}
	return false
}

// CanBeConfirmed returns true if the reservation can be confirmed
func (r *Reservation) CanBeConfirmed(now time.Time) bool {
	return r.Status == StatusPending && !r.IsExpired(now)
}

// CanBeRejected returns true if the reservation can be rejected
func (r *Reservation) CanBeRejected(now time.Time) bool {
	return r.Status == StatusPending && !r.IsExpired(now)
}

// CanBeCancelled returns true if the owner can still cancel the reservation
// Отмена возможна только до начала бронирования
func (r *Reservation) CanBeCancelled(now time.Time) bool {
	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return false
	}
	return now.Before(r.StartsAt())
}

// CanBeCompleted returns true if the booking window has fully elapsed
func (r *Reservation) CanBeCompleted(now time.Time) bool {
	return r.Status == StatusConfirmed && !now.Before(r.EndsAt())
}

// StartsAt возвращает момент начала бронирования
func (r *Reservation) StartsAt() time.Time {
	day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
	return day.Add(time.Duration(r.StartMinute) * time.Minute)
}

// EndsAt возвращает момент окончания бронирования
func (r *Reservation) EndsAt() time.Time {
	day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
	return day.Add(time.Duration(r.EndMinute) * time.Minute)
}

// CourtReservationsFilter фильтр для получения бронирований корта
type CourtReservationsFilter struct {
	CourtID         int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неблокирующие бронирования
}
