package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/ptr"
)

func TestComposeOptions(t *testing.T) {
	t.Run("sliding window over contiguous blocks", func(t *testing.T) {
		// 09:00-12:00 свободно, запрошено 90 минут
		free := atomicBlocks(540, 720)

		options := ComposeOptions(free, 90)

		assert.Equal(t, []domain.BookingOption{
			{StartMinute: 540, EndMinute: 630},
			{StartMinute: 570, EndMinute: 660},
			{StartMinute: 600, EndMinute: 690},
			{StartMinute: 630, EndMinute: 720},
		}, options)
	})

	t.Run("gap breaks the chain", func(t *testing.T) {
		free := []domain.TimeBlock{
			{StartMinute: 0, EndMinute: 30},
			{StartMinute: 30, EndMinute: 60},
			{StartMinute: 60, EndMinute: 90},
			{StartMinute: 180, EndMinute: 210},
		}

		options := ComposeOptions(free, 60)

		// Одиночный блок [180, 210) не набирает 60 минут
		assert.Equal(t, []domain.BookingOption{
			{StartMinute: 0, EndMinute: 60},
			{StartMinute: 30, EndMinute: 90},
		}, options)
	})

	t.Run("duration equal to single block", func(t *testing.T) {
		free := []domain.TimeBlock{
			{StartMinute: 600, EndMinute: 630},
			{StartMinute: 720, EndMinute: 750},
		}

		options := ComposeOptions(free, 30)

		assert.Equal(t, []domain.BookingOption{
			{StartMinute: 600, EndMinute: 630},
			{StartMinute: 720, EndMinute: 750},
		}, options)
	})

	t.Run("not enough contiguous blocks", func(t *testing.T) {
		free := []domain.TimeBlock{
			{StartMinute: 600, EndMinute: 630},
			{StartMinute: 660, EndMinute: 690},
		}

		options := ComposeOptions(free, 60)

		assert.Empty(t, options)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		assert.Empty(t, ComposeOptions(nil, 60))
		assert.Empty(t, ComposeOptions([]domain.TimeBlock{}, 60))
	})

	t.Run("duplicate blocks from overlapping rules are compacted", func(t *testing.T) {
		free := []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 570},
			{StartMinute: 540, EndMinute: 570},
			{StartMinute: 570, EndMinute: 600},
		}

		options := ComposeOptions(free, 60)

		assert.Equal(t, []domain.BookingOption{
			{StartMinute: 540, EndMinute: 600},
		}, options)
	})

	t.Run("fragment chain must match duration exactly", func(t *testing.T) {
		// Вычитание невыровненной блокировки [550, 560) оставляет обрезки;
		// цепочка [560, 600) длиной 40 минут не является часовым вариантом
		free := []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 550},
			{StartMinute: 560, EndMinute: 570},
			{StartMinute: 570, EndMinute: 600},
		}

		options := ComposeOptions(free, 60)

		assert.Empty(t, options)
	})

	t.Run("fragments summing to duration form an option", func(t *testing.T) {
		free := []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 550},
			{StartMinute: 550, EndMinute: 570},
			{StartMinute: 570, EndMinute: 600},
		}

		options := ComposeOptions(free, 60)

		assert.Equal(t, []domain.BookingOption{
			{StartMinute: 540, EndMinute: 600},
		}, options)
	})

	t.Run("unaligned removal leaves no false options end to end", func(t *testing.T) {
		date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
		now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		blocked := []*domain.BlockedRange{
			{
				Kind:        domain.BlockOneTime,
				Date:        ptr.Ptr(date),
				StartMinute: ptr.Ptr(550),
				EndMinute:   ptr.Ptr(560),
				Active:      true,
			},
		}

		free := FilterBlocks(atomicBlocks(540, 600), nil, blocked, 1, date, now, 0)
		options := ComposeOptions(free, 60)

		assert.Empty(t, options)
	})

	t.Run("unsorted input is handled", func(t *testing.T) {
		free := []domain.TimeBlock{
			{StartMinute: 570, EndMinute: 600},
			{StartMinute: 540, EndMinute: 570},
		}

		options := ComposeOptions(free, 60)

		assert.Equal(t, []domain.BookingOption{
			{StartMinute: 540, EndMinute: 600},
		}, options)
	})
}
