package get_available_slots

import (
	"sort"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// removalRange интервал, который нужно вычесть из базовой доступности
type removalRange struct {
	start int
	end   int
}

// FilterBlocks вычитает занятые интервалы из базовых блоков
//
// Удаляемые интервалы: бронирования, занимающие время на дату запроса
// (pending с истекшим expires_at уже отфильтрованы ленивым предикатом),
// и действующие административные блокировки. Затем, если дата — сегодня,
// отбрасываются блоки ближе bufferMinutes от текущего момента
//
// Пересечение считается по полуоткрытым интервалам: блок и интервал,
// соприкасающиеся границами, не пересекаются
func FilterBlocks(
	baseBlocks []domain.TimeBlock,
	reservations []*domain.Reservation,
	blockedRanges []*domain.BlockedRange,
	courtID int64,
	date time.Time,
	now time.Time,
	bufferMinutes int,
) []domain.TimeBlock {
	removals := collectRemovals(reservations, blockedRanges, courtID, date, now)

	sort.Slice(removals, func(i, j int) bool {
		return removals[i].start < removals[j].start
	})

	blocks := baseBlocks
	for _, removal := range removals {
		if len(blocks) == 0 {
			break
		}
		next := make([]domain.TimeBlock, 0, len(blocks))
		for _, block := range blocks {
			next = append(next, block.Subtract(removal.start, removal.end)...)
		}
		blocks = next
	}

	// Буфер "слишком поздно бронировать" действует только на сегодня
	if isSameDay(date, now) {
		earliest := domain.MinuteOfDay(now) + bufferMinutes
		withBuffer := make([]domain.TimeBlock, 0, len(blocks))
		for _, block := range blocks {
			if block.StartMinute >= earliest {
				withBuffer = append(withBuffer, block)
			}
		}
		blocks = withBuffer
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].StartMinute < blocks[j].StartMinute
	})

	return blocks
}

func collectRemovals(
	reservations []*domain.Reservation,
	blockedRanges []*domain.BlockedRange,
	courtID int64,
	date time.Time,
	now time.Time,
) []removalRange {
	removals := make([]removalRange, 0, len(reservations)+len(blockedRanges))

	for _, reservation := range reservations {
		if !reservation.BlocksAvailability(now) {
			continue
		}
		removals = append(removals, removalRange{
			start: reservation.StartMinute,
			end:   reservation.EndMinute,
		})
	}

	for _, blockedRange := range blockedRanges {
		if !blockedRange.AppliesToCourt(courtID) || !blockedRange.AppliesTo(date) {
			continue
		}
		start, end := blockedRange.Window()
		removals = append(removals, removalRange{start: start, end: end})
	}

	return removals
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
