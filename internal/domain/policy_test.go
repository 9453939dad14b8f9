package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mudasar10147/sportsarena-backend/pkg/ptr"
)

var testDefaults = SystemDefaults{
	MaxAdvanceBookingDays:   30,
	MinDurationMinutes:      30,
	MaxDurationMinutes:      240,
	BufferMinutes:           0,
	MinAdvanceNoticeMinutes: 60,
	PendingExpirationHours:  24,
}

func TestResolvePolicy(t *testing.T) {
	t.Run("no overrides yields defaults", func(t *testing.T) {
		policy := ResolvePolicy(testDefaults, nil, nil)
		assert.Equal(t, testDefaults.Policy(), policy)
	})

	t.Run("facility override wins over defaults", func(t *testing.T) {
		facility := &PolicyOverride{
			MaxAdvanceBookingDays: ptr.Ptr(14),
			BufferMinutes:         ptr.Ptr(30),
		}

		policy := ResolvePolicy(testDefaults, facility, nil)

		assert.Equal(t, 14, policy.MaxAdvanceBookingDays)
		assert.Equal(t, 30, policy.BufferMinutes)
		// Незаданные поля остаются дефолтными
		assert.Equal(t, 240, policy.MaxDurationMinutes)
		assert.Equal(t, 24, policy.PendingExpirationHours)
	})

	t.Run("court override wins over facility", func(t *testing.T) {
		facility := &PolicyOverride{
			MaxAdvanceBookingDays: ptr.Ptr(14),
			MinDurationMinutes:    ptr.Ptr(60),
		}
		court := &PolicyOverride{
			MaxAdvanceBookingDays: ptr.Ptr(7),
		}

		policy := ResolvePolicy(testDefaults, facility, court)

		// Слияние по каждому полю: корт > комплекс > дефолты
		assert.Equal(t, 7, policy.MaxAdvanceBookingDays)
		assert.Equal(t, 60, policy.MinDurationMinutes)
		assert.Equal(t, 240, policy.MaxDurationMinutes)
	})

	t.Run("court override alone applies over defaults", func(t *testing.T) {
		court := &PolicyOverride{PendingExpirationHours: ptr.Ptr(2)}

		policy := ResolvePolicy(testDefaults, nil, court)

		assert.Equal(t, 2, policy.PendingExpirationHours)
		assert.Equal(t, 30, policy.MaxAdvanceBookingDays)
	})
}
