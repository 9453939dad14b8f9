package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/ptr"
)

func atomicBlocks(start, end int) []domain.TimeBlock {
	blocks := make([]domain.TimeBlock, 0)
	for s := start; s+domain.GranularityMinutes <= end; s += domain.GranularityMinutes {
		blocks = append(blocks, domain.TimeBlock{StartMinute: s, EndMinute: s + domain.GranularityMinutes})
	}
	return blocks
}

func TestFilterBlocks(t *testing.T) {
	courtID := int64(1)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	// "Сейчас" накануне, буфер сегодняшнего дня не задействован
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("confirmed reservation removes its blocks", func(t *testing.T) {
		base := atomicBlocks(540, 720)
		reservations := []*domain.Reservation{
			{Status: domain.StatusConfirmed, StartMinute: 600, EndMinute: 660},
		}

		free := FilterBlocks(base, reservations, nil, courtID, date, now, 0)

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 570},
			{StartMinute: 570, EndMinute: 600},
			{StartMinute: 660, EndMinute: 690},
			{StartMinute: 690, EndMinute: 720},
		}, free)
	})

	t.Run("expired pending reservation is ignored", func(t *testing.T) {
		base := atomicBlocks(540, 660)
		expired := now.Add(-time.Hour)
		reservations := []*domain.Reservation{
			{Status: domain.StatusPending, StartMinute: 540, EndMinute: 600, ExpiresAt: &expired},
		}

		free := FilterBlocks(base, reservations, nil, courtID, date, now, 0)

		assert.Equal(t, base, free)
	})

	t.Run("live pending reservation removes its blocks", func(t *testing.T) {
		base := atomicBlocks(540, 660)
		deadline := now.Add(time.Hour)
		reservations := []*domain.Reservation{
			{Status: domain.StatusPending, StartMinute: 540, EndMinute: 600, ExpiresAt: &deadline},
		}

		free := FilterBlocks(base, reservations, nil, courtID, date, now, 0)

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 600, EndMinute: 630},
			{StartMinute: 630, EndMinute: 660},
		}, free)
	})

	t.Run("blocked range with window removes overlap", func(t *testing.T) {
		base := atomicBlocks(540, 720)
		blocked := []*domain.BlockedRange{
			{
				Kind:        domain.BlockOneTime,
				Date:        ptr.Ptr(date),
				StartMinute: ptr.Ptr(570),
				EndMinute:   ptr.Ptr(630),
				Active:      true,
			},
		}

		free := FilterBlocks(base, nil, blocked, courtID, date, now, 0)

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 570},
			{StartMinute: 630, EndMinute: 660},
			{StartMinute: 660, EndMinute: 690},
			{StartMinute: 690, EndMinute: 720},
		}, free)
	})

	t.Run("facility wide block without window clears the day", func(t *testing.T) {
		base := atomicBlocks(540, 720)
		blocked := []*domain.BlockedRange{
			{Kind: domain.BlockOneTime, Date: ptr.Ptr(date), Active: true},
		}

		free := FilterBlocks(base, nil, blocked, courtID, date, now, 0)

		assert.Empty(t, free)
	})

	t.Run("block for another court is ignored", func(t *testing.T) {
		base := atomicBlocks(540, 600)
		blocked := []*domain.BlockedRange{
			{
				Kind:    domain.BlockOneTime,
				Date:    ptr.Ptr(date),
				CourtID: ptr.Ptr(int64(99)),
				Active:  true,
			},
		}

		free := FilterBlocks(base, nil, blocked, courtID, date, now, 0)

		assert.Equal(t, base, free)
	})

	t.Run("block for another date is ignored", func(t *testing.T) {
		base := atomicBlocks(540, 600)
		blocked := []*domain.BlockedRange{
			{Kind: domain.BlockOneTime, Date: ptr.Ptr(date.AddDate(0, 0, 1)), Active: true},
		}

		free := FilterBlocks(base, nil, blocked, courtID, date, now, 0)

		assert.Equal(t, base, free)
	})

	t.Run("today buffer trims near blocks", func(t *testing.T) {
		base := atomicBlocks(540, 720)
		// Сейчас 09:40 того же дня, буфер 60 минут: блоки раньше 10:40 отпадают
		sameDayNow := time.Date(2025, 6, 16, 9, 40, 0, 0, time.UTC)

		free := FilterBlocks(base, nil, nil, courtID, date, sameDayNow, 60)

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 660, EndMinute: 690},
			{StartMinute: 690, EndMinute: 720},
		}, free)
	})

	t.Run("buffer does not apply to future dates", func(t *testing.T) {
		base := atomicBlocks(540, 600)

		free := FilterBlocks(base, nil, nil, courtID, date, now, 60)

		assert.Equal(t, base, free)
	})

	t.Run("adjacent reservation does not touch blocks", func(t *testing.T) {
		base := atomicBlocks(600, 660)
		reservations := []*domain.Reservation{
			{Status: domain.StatusConfirmed, StartMinute: 540, EndMinute: 600},
			{Status: domain.StatusConfirmed, StartMinute: 660, EndMinute: 720},
		}

		free := FilterBlocks(base, reservations, nil, courtID, date, now, 0)

		assert.Equal(t, base, free)
	})
}
