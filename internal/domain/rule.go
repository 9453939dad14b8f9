package domain

import "fmt"

// AvailabilityRule правило доступности корта на день недели
// Интервал может переходить через полночь: StartMinute > EndMinute
// означает "от StartMinute до 24:00 плюс от 00:00 до EndMinute"
// (например, 18:00–02:00). Правила принадлежат администрированию
// корта и читаются движком как есть
type AvailabilityRule struct {
	ID            int64
	CourtID       int64
	DayOfWeek     int // 0 = воскресенье ... 6 = суббота
	StartMinute   int
	EndMinute     int
	PriceOverride *float64
	Active        bool
}

// CrossesMidnight returns true if the rule wraps past midnight
func (r *AvailabilityRule) CrossesMidnight() bool {
	return r.StartMinute > r.EndMinute
}

// Validate проверяет корректность границ правила
// StartMinute == EndMinute не имеет осмысленной интерпретации ни в прямой,
// ни в полуночной семантике
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("availability rule id=%d: day of week %d is out of range [0,6]", r.ID, r.DayOfWeek)
	}
	if r.StartMinute < 0 || r.StartMinute >= MinutesPerDay {
		return fmt.Errorf("availability rule id=%d: start minute %d is out of range [0,%d)", r.ID, r.StartMinute, MinutesPerDay)
	}
	if r.EndMinute < 0 || r.EndMinute > MinutesPerDay {
		return fmt.Errorf("availability rule id=%d: end minute %d is out of range [0,%d]", r.ID, r.EndMinute, MinutesPerDay)
	}
	if r.StartMinute == r.EndMinute {
		return fmt.Errorf("availability rule id=%d: start equals end (%d)", r.ID, r.StartMinute)
	}
	return nil
}

// Segments раскладывает правило на интервалы внутри одних суток
// Обычное правило дает один интервал, переходящее через полночь — два:
// [start, 1440) и [0, end)
func (r *AvailabilityRule) Segments() [][2]int {
	if r.CrossesMidnight() {
		segments := [][2]int{{r.StartMinute, MinutesPerDay}}
		if r.EndMinute > 0 {
			segments = append(segments, [2]int{0, r.EndMinute})
		}
		return segments
	}
	return [][2]int{{r.StartMinute, r.EndMinute}}
}

// Covers проверяет, что интервал [start, end) целиком лежит
// внутри одного из сегментов правила
func (r *AvailabilityRule) Covers(start, end int) bool {
	for _, seg := range r.Segments() {
		if start >= seg[0] && end <= seg[1] {
			return true
		}
	}
	return false
}
