package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestGenerateBaseBlocks(t *testing.T) {
	t.Run("single rule expands to atomic blocks", func(t *testing.T) {
		rules := []*domain.AvailabilityRule{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 660},
		}

		blocks := GenerateBaseBlocks(rules, nopLogger{})

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 570},
			{StartMinute: 570, EndMinute: 600},
			{StartMinute: 600, EndMinute: 630},
			{StartMinute: 630, EndMinute: 660},
		}, blocks)
	})

	t.Run("no rules means empty availability", func(t *testing.T) {
		blocks := GenerateBaseBlocks(nil, nopLogger{})
		assert.Empty(t, blocks)
	})

	t.Run("midnight crossing rule yields both segments", func(t *testing.T) {
		// 23:00-01:00 -> [1380, 1440) и [0, 60)
		rules := []*domain.AvailabilityRule{
			{DayOfWeek: 5, StartMinute: 1380, EndMinute: 60},
		}

		blocks := GenerateBaseBlocks(rules, nopLogger{})

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 0, EndMinute: 30},
			{StartMinute: 30, EndMinute: 60},
			{StartMinute: 1380, EndMinute: 1410},
			{StartMinute: 1410, EndMinute: 1440},
		}, blocks)
	})

	t.Run("malformed rule is skipped", func(t *testing.T) {
		rules := []*domain.AvailabilityRule{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 540}, // start == end
			{DayOfWeek: 1, StartMinute: 600, EndMinute: 660},
		}

		blocks := GenerateBaseBlocks(rules, nopLogger{})

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 600, EndMinute: 630},
			{StartMinute: 630, EndMinute: 660},
		}, blocks)
	})

	t.Run("price override propagates to blocks", func(t *testing.T) {
		price := 50.0
		rules := []*domain.AvailabilityRule{
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 600, PriceOverride: &price},
			{DayOfWeek: 1, StartMinute: 600, EndMinute: 660},
		}

		blocks := GenerateBaseBlocks(rules, nopLogger{})

		assert.Len(t, blocks, 4)
		assert.Equal(t, ptr.Ptr(50.0), blocks[0].PriceOverride)
		assert.Equal(t, ptr.Ptr(50.0), blocks[1].PriceOverride)
		assert.Nil(t, blocks[2].PriceOverride)
		assert.Nil(t, blocks[3].PriceOverride)
	})

	t.Run("blocks from several rules come sorted", func(t *testing.T) {
		rules := []*domain.AvailabilityRule{
			{DayOfWeek: 1, StartMinute: 1080, EndMinute: 1140},
			{DayOfWeek: 1, StartMinute: 540, EndMinute: 600},
		}

		blocks := GenerateBaseBlocks(rules, nopLogger{})

		assert.Equal(t, []domain.TimeBlock{
			{StartMinute: 540, EndMinute: 570},
			{StartMinute: 570, EndMinute: 600},
			{StartMinute: 1080, EndMinute: 1110},
			{StartMinute: 1110, EndMinute: 1140},
		}, blocks)
	})
}
