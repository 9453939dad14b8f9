package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testDay = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC) // понедельник

func pendingReservation(expiresAt time.Time) *Reservation {
	return &Reservation{
		ID:          1,
		Status:      StatusPending,
		Date:        testDay,
		StartMinute: 600,
		EndMinute:   660,
		ExpiresAt:   &expiresAt,
	}
}

func TestReservation_IsTerminal(t *testing.T) {
	terminal := []ReservationStatus{StatusRejected, StatusExpired, StatusCancelled, StatusCompleted}
	for _, status := range terminal {
		r := Reservation{Status: status}
		assert.True(t, r.IsTerminal(), "status %s", status)
	}

	for _, status := range []ReservationStatus{StatusPending, StatusConfirmed} {
		r := Reservation{Status: status}
		assert.False(t, r.IsTerminal(), "status %s", status)
	}
}

func TestReservation_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("pending before deadline", func(t *testing.T) {
		r := pendingReservation(now.Add(time.Hour))
		assert.False(t, r.IsExpired(now))
	})

	t.Run("pending past deadline", func(t *testing.T) {
		r := pendingReservation(now.Add(-time.Minute))
		assert.True(t, r.IsExpired(now))
	})

	t.Run("deadline exactly now counts as expired", func(t *testing.T) {
		r := pendingReservation(now)
		assert.True(t, r.IsExpired(now))
	})

	t.Run("confirmed never expires", func(t *testing.T) {
		r := pendingReservation(now.Add(-time.Hour))
		r.Status = StatusConfirmed
		assert.False(t, r.IsExpired(now))
	})

	t.Run("pending without deadline never expires", func(t *testing.T) {
		r := pendingReservation(now)
		r.ExpiresAt = nil
		assert.False(t, r.IsExpired(now))
	})
}

func TestReservation_BlocksAvailability(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		r    *Reservation
		want bool
	}{
		{"confirmed blocks", &Reservation{Status: StatusConfirmed}, true},
		{"completed blocks", &Reservation{Status: StatusCompleted}, true},
		{"live pending blocks", pendingReservation(now.Add(time.Hour)), true},
		{"expired pending does not block", pendingReservation(now.Add(-time.Hour)), false},
		{"cancelled does not block", &Reservation{Status: StatusCancelled}, false},
		{"rejected does not block", &Reservation{Status: StatusRejected}, false},
		{"expired does not block", &Reservation{Status: StatusExpired}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.BlocksAvailability(now))
		})
	}
}

func TestReservation_Transitions(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("pending can be confirmed and rejected", func(t *testing.T) {
		r := pendingReservation(now.Add(time.Hour))
		assert.True(t, r.CanBeConfirmed(now))
		assert.True(t, r.CanBeRejected(now))
	})

	t.Run("expired pending can not be confirmed", func(t *testing.T) {
		r := pendingReservation(now.Add(-time.Hour))
		assert.False(t, r.CanBeConfirmed(now))
		assert.False(t, r.CanBeRejected(now))
	})

	t.Run("cancellation only before start", func(t *testing.T) {
		r := pendingReservation(now.Add(24 * time.Hour))
		// Начало в 10:00 следующего дня
		beforeStart := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
		afterStart := time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC)

		assert.True(t, r.CanBeCancelled(beforeStart))
		assert.False(t, r.CanBeCancelled(afterStart))

		r.Status = StatusConfirmed
		assert.True(t, r.CanBeCancelled(beforeStart))

		r.Status = StatusCompleted
		assert.False(t, r.CanBeCancelled(beforeStart))
	})

	t.Run("completion only after end", func(t *testing.T) {
		r := &Reservation{Status: StatusConfirmed, Date: testDay, StartMinute: 600, EndMinute: 660}
		beforeEnd := time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC)
		atEnd := time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)

		assert.False(t, r.CanBeCompleted(beforeEnd))
		assert.True(t, r.CanBeCompleted(atEnd))

		r.Status = StatusPending
		assert.False(t, r.CanBeCompleted(atEnd))
	})
}

func TestReservation_StartsAtEndsAt(t *testing.T) {
	r := &Reservation{Date: testDay, StartMinute: 600, EndMinute: 690}

	assert.Equal(t, time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC), r.StartsAt())
	assert.Equal(t, time.Date(2025, 6, 16, 11, 30, 0, 0, time.UTC), r.EndsAt())
	assert.Equal(t, 90, r.DurationMinutes())
}
