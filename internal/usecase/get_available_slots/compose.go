package get_available_slots

import (
	"sort"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// ComposeOptions находит все непрерывные цепочки блоков суммарной длины
// durationMinutes и возвращает их как варианты бронирования
//
// Для каждого стартового индекса окно расширяется, пока следующий блок
// начинается ровно там, где закончился предыдущий (строгая смежность,
// без зазоров). Длина цепочки сверяется по фактическому интервалу
// [start, end), а не по количеству блоков: вычитание невыровненной
// блокировки может оставить обрезок короче 30 минут, и цепочка с таким
// обрезком не должна выдаваться за интервал полной длины. Простое
// "взять первые k блоков" не подходит: свободные блоки могут
// образовывать несколько независимых цепочек, и каждый допустимый
// старт должен быть проверен. O(n*k) в худшем случае — приемлемо
// на масштабе блоков одного дня
//
// Пустой вход или недостаточная длина цепочек дают пустой результат,
// это не ошибка
func ComposeOptions(freeBlocks []domain.TimeBlock, durationMinutes int) []domain.BookingOption {
	if durationMinutes <= 0 || len(freeBlocks) == 0 {
		return []domain.BookingOption{}
	}

	sorted := make([]domain.TimeBlock, len(freeBlocks))
	copy(sorted, freeBlocks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartMinute < sorted[j].StartMinute
	})

	// Пересекающиеся правила могут дать одинаковые атомарные блоки;
	// дубликат разорвал бы проверку смежности внутри цепочки
	blocks := sorted[:0]
	for _, block := range sorted {
		if len(blocks) > 0 && blocks[len(blocks)-1].StartMinute == block.StartMinute {
			continue
		}
		blocks = append(blocks, block)
	}

	options := make([]domain.BookingOption, 0)
	seen := make(map[int]bool)

	for i := 0; i < len(blocks); i++ {
		span := blocks[i].Duration()
		j := i
		for span < durationMinutes && j+1 < len(blocks) && blocks[j+1].StartMinute == blocks[j].EndMinute {
			j++
			span += blocks[j].Duration()
		}
		// Цепочка из обрезков может перескочить запрошенную длину,
		// не попав в неё точно — такой старт не дает варианта
		if span != durationMinutes {
			continue
		}

		start := blocks[i].StartMinute
		if seen[start] {
			continue
		}
		seen[start] = true

		options = append(options, domain.BookingOption{
			StartMinute: start,
			EndMinute:   blocks[j].EndMinute,
		})
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].StartMinute < options[j].StartMinute
	})

	return options
}
