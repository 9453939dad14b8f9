package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mudasar10147/sportsarena-backend/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBlockedRange_AppliesTo(t *testing.T) {
	monday := date(2025, 6, 16)

	t.Run("one time matches its date only", func(t *testing.T) {
		b := BlockedRange{Kind: BlockOneTime, Date: ptr.Ptr(monday), Active: true}
		assert.True(t, b.AppliesTo(monday))
		assert.False(t, b.AppliesTo(monday.AddDate(0, 0, 1)))
	})

	t.Run("recurring matches weekday", func(t *testing.T) {
		// 1 = понедельник
		b := BlockedRange{Kind: BlockRecurring, DayOfWeek: ptr.Ptr(1), Active: true}
		assert.True(t, b.AppliesTo(monday))
		assert.True(t, b.AppliesTo(monday.AddDate(0, 0, 7)))
		assert.False(t, b.AppliesTo(monday.AddDate(0, 0, 1)))
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		b := BlockedRange{
			Kind:      BlockDateRange,
			StartDate: ptr.Ptr(date(2025, 6, 16)),
			EndDate:   ptr.Ptr(date(2025, 6, 18)),
			Active:    true,
		}
		assert.True(t, b.AppliesTo(date(2025, 6, 16)))
		assert.True(t, b.AppliesTo(date(2025, 6, 17)))
		assert.True(t, b.AppliesTo(date(2025, 6, 18)))
		assert.False(t, b.AppliesTo(date(2025, 6, 15)))
		assert.False(t, b.AppliesTo(date(2025, 6, 19)))
	})

	t.Run("inactive block never applies", func(t *testing.T) {
		b := BlockedRange{Kind: BlockOneTime, Date: ptr.Ptr(monday), Active: false}
		assert.False(t, b.AppliesTo(monday))
	})
}

func TestBlockedRange_Window(t *testing.T) {
	t.Run("missing bounds mean full day", func(t *testing.T) {
		b := BlockedRange{}
		start, end := b.Window()
		assert.Equal(t, 0, start)
		assert.Equal(t, MinutesPerDay, end)
	})

	t.Run("explicit window", func(t *testing.T) {
		b := BlockedRange{StartMinute: ptr.Ptr(600), EndMinute: ptr.Ptr(720)}
		start, end := b.Window()
		assert.Equal(t, 600, start)
		assert.Equal(t, 720, end)
	})

	t.Run("half open bounds", func(t *testing.T) {
		b := BlockedRange{StartMinute: ptr.Ptr(600)}
		start, end := b.Window()
		assert.Equal(t, 600, start)
		assert.Equal(t, MinutesPerDay, end)
	})
}

func TestBlockedRange_AppliesToCourt(t *testing.T) {
	facilityWide := BlockedRange{}
	assert.True(t, facilityWide.AppliesToCourt(1))
	assert.True(t, facilityWide.AppliesToCourt(42))

	courtOnly := BlockedRange{CourtID: ptr.Ptr(int64(1))}
	assert.True(t, courtOnly.AppliesToCourt(1))
	assert.False(t, courtOnly.AppliesToCourt(2))
}
