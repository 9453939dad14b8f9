package domain

import "time"

// BlockKind вид административной блокировки
type BlockKind string

const (
	// BlockOneTime блокировка на конкретную дату с опциональным окном времени
	BlockOneTime BlockKind = "one_time"
	// BlockRecurring еженедельная блокировка по дню недели
	BlockRecurring BlockKind = "recurring"
	// BlockDateRange блокировка целых дней на диапазоне дат
	BlockDateRange BlockKind = "date_range"
)

// BlockedRange административная блокировка времени, не зависящая от бронирований
// CourtID == nil означает блокировку всех кортов комплекса
type BlockedRange struct {
	ID         int64
	FacilityID int64
	CourtID    *int64

	Kind BlockKind

	Date      *time.Time // для one_time
	StartDate *time.Time // для date_range
	EndDate   *time.Time // для date_range
	DayOfWeek *int       // для recurring

	// Окно времени; nil-границы означают блокировку всего дня
	StartMinute *int
	EndMinute   *int

	Reason string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo проверяет, действует ли блокировка на указанную дату
func (b *BlockedRange) AppliesTo(date time.Time) bool {
	if !b.Active {
		return false
	}

	switch b.Kind {
	case BlockOneTime:
		return b.Date != nil && sameDate(*b.Date, date)
	case BlockRecurring:
		return b.DayOfWeek != nil && *b.DayOfWeek == int(date.Weekday())
	case BlockDateRange:
		if b.StartDate == nil || b.EndDate == nil {
			return false
		}
		day := truncateToDay(date)
		return !day.Before(truncateToDay(*b.StartDate)) && !day.After(truncateToDay(*b.EndDate))
	}
	return false
}

// Window возвращает блокируемое окно [start, end) в минутах
// Отсутствие окна означает блокировку всего дня: [0, 1440)
func (b *BlockedRange) Window() (int, int) {
	start, end := 0, MinutesPerDay
	if b.StartMinute != nil {
		start = *b.StartMinute
	}
	if b.EndMinute != nil {
		end = *b.EndMinute
	}
	return start, end
}

// AppliesToCourt проверяет, действует ли блокировка на указанный корт
func (b *BlockedRange) AppliesToCourt(courtID int64) bool {
	return b.CourtID == nil || *b.CourtID == courtID
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
