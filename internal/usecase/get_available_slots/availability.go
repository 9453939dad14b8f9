package get_available_slots

import (
	"sort"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// GenerateBaseBlocks раскладывает правила доступности одного дня в
// упорядоченную последовательность атомарных 30-минутных блоков
//
// Правило, переходящее через полночь (start > end), дает два сегмента:
// [start, 1440) и [0, end). Блоки разных правил НЕ сливаются — композитору
// нужны отдельные атомарные блоки
//
// Битое правило (границы вне [0,1440), start == end) логируется
// и пропускается: одно некорректное правило не должно делать корт
// недоступным целиком
func GenerateBaseBlocks(rules []*domain.AvailabilityRule, logger Logger) []domain.TimeBlock {
	blocks := make([]domain.TimeBlock, 0)

	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			logger.Warn("GenerateBaseBlocks: skipping malformed rule: %v", err)
			continue
		}

		for _, seg := range rule.Segments() {
			for start := seg[0]; start+domain.GranularityMinutes <= seg[1]; start += domain.GranularityMinutes {
				blocks = append(blocks, domain.TimeBlock{
					StartMinute:   start,
					EndMinute:     start + domain.GranularityMinutes,
					PriceOverride: rule.PriceOverride,
				})
			}
		}
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].StartMinute < blocks[j].StartMinute
	})

	return blocks
}
