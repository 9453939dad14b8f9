package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    AvailabilityRule
		wantErr bool
	}{
		{"valid rule", AvailabilityRule{DayOfWeek: 1, StartMinute: 540, EndMinute: 1320}, false},
		{"valid midnight crossing rule", AvailabilityRule{DayOfWeek: 5, StartMinute: 1080, EndMinute: 120}, false},
		{"day of week too large", AvailabilityRule{DayOfWeek: 7, StartMinute: 540, EndMinute: 600}, true},
		{"negative day of week", AvailabilityRule{DayOfWeek: -1, StartMinute: 540, EndMinute: 600}, true},
		{"start out of range", AvailabilityRule{DayOfWeek: 1, StartMinute: 1440, EndMinute: 600}, true},
		{"end out of range", AvailabilityRule{DayOfWeek: 1, StartMinute: 540, EndMinute: 1441}, true},
		{"start equals end", AvailabilityRule{DayOfWeek: 1, StartMinute: 540, EndMinute: 540}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityRule_Segments(t *testing.T) {
	t.Run("plain rule yields one segment", func(t *testing.T) {
		rule := AvailabilityRule{StartMinute: 540, EndMinute: 720}
		assert.Equal(t, [][2]int{{540, 720}}, rule.Segments())
	})

	t.Run("midnight crossing rule yields two segments", func(t *testing.T) {
		// 18:00-02:00 -> [1080, 1440) и [0, 120)
		rule := AvailabilityRule{StartMinute: 1080, EndMinute: 120}
		assert.Equal(t, [][2]int{{1080, 1440}, {0, 120}}, rule.Segments())
	})

	t.Run("rule ending exactly at midnight", func(t *testing.T) {
		rule := AvailabilityRule{StartMinute: 1080, EndMinute: 1440}
		assert.False(t, rule.CrossesMidnight())
		assert.Equal(t, [][2]int{{1080, 1440}}, rule.Segments())
	})
}

func TestAvailabilityRule_Covers(t *testing.T) {
	rule := AvailabilityRule{StartMinute: 540, EndMinute: 720}

	assert.True(t, rule.Covers(540, 720))
	assert.True(t, rule.Covers(600, 660))
	assert.False(t, rule.Covers(510, 600))
	assert.False(t, rule.Covers(660, 750))

	midnight := AvailabilityRule{StartMinute: 1080, EndMinute: 120}
	assert.True(t, midnight.Covers(1080, 1440))
	assert.True(t, midnight.Covers(0, 120))
	// Интервал через полночь не лежит ни в одном сегменте одних суток
	assert.False(t, midnight.Covers(1380, 60))
}
