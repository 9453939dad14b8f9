package domain

import "time"

// TimeBlock интервал доступности внутри одних суток
// Границы в минутах с начала суток, интервал полуоткрытый: [StartMinute, EndMinute)
// Не хранится в БД — строится в памяти на каждый запрос
type TimeBlock struct {
	StartMinute   int
	EndMinute     int
	PriceOverride *float64
}

// Duration возвращает длину блока в минутах
func (b TimeBlock) Duration() int {
	return b.EndMinute - b.StartMinute
}

// Overlaps проверяет пересечение блока с интервалом [start, end)
// Полуоткрытая семантика: соприкасающиеся интервалы (EndMinute == start)
// пересечением НЕ считаются
func (b TimeBlock) Overlaps(start, end int) bool {
	return b.StartMinute < end && b.EndMinute > start
}

// Subtract вычитает интервал [start, end) из блока
// Возвращает от нуля до двух непустых остатков:
// - нет пересечения: блок целиком
// - интервал покрывает блок: пусто
// - иначе: левый и/или правый остаток
func (b TimeBlock) Subtract(start, end int) []TimeBlock {
	if !b.Overlaps(start, end) {
		return []TimeBlock{b}
	}

	parts := make([]TimeBlock, 0, 2)
	if b.StartMinute < start {
		parts = append(parts, TimeBlock{StartMinute: b.StartMinute, EndMinute: start, PriceOverride: b.PriceOverride})
	}
	if end < b.EndMinute {
		parts = append(parts, TimeBlock{StartMinute: end, EndMinute: b.EndMinute, PriceOverride: b.PriceOverride})
	}
	return parts
}

// BookingOption вариант бронирования запрошенной длительности,
// составленный из непрерывной цепочки атомарных блоков
type BookingOption struct {
	StartMinute int
	EndMinute   int
}

// DoOverlap проверяет пересечение двух полуоткрытых интервалов [s1,e1) и [s2,e2)
// Соприкасающиеся интервалы (e1 == s2) не пересекаются
func DoOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// ValidMinuteRange проверяет, что [start, end) — корректный интервал внутри суток
func ValidMinuteRange(start, end int) bool {
	return start >= 0 && start < end && end <= MinutesPerDay
}

// AlignedToGranularity проверяет выравнивание минуты по 30-минутной сетке
func AlignedToGranularity(minute int) bool {
	return minute%GranularityMinutes == 0
}

// MinuteOfDay возвращает количество минут с начала суток для t
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
