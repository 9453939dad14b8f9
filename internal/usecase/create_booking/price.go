package create_booking

import (
	"math"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// calculatePrice считает стоимость бронирования [startMinute, endMinute)
// и попутно проверяет покрытие правилами доступности
//
// Интервал может накрываться несколькими смежными правилами, поэтому
// проверка и тарификация идут поблочно: каждый атомарный блок должен
// попасть в сегмент какого-то правила, иначе интервал вне доступности.
// Блок тарифицируется по PriceOverride накрывающего правила, если он
// задан, иначе по базовой часовой цене корта. При нескольких накрывающих
// правилах приоритет у первого с переопределением цены
//
// Итог округляется до 2 знаков
func calculatePrice(court *domain.Court, rules []*domain.AvailabilityRule, startMinute, endMinute int) (float64, error) {
	total := 0.0

	for blockStart := startMinute; blockStart < endMinute; blockStart += domain.GranularityMinutes {
		blockEnd := blockStart + domain.GranularityMinutes

		rate, covered := blockRate(court.HourlyPrice, rules, blockStart, blockEnd)
		if !covered {
			return 0, ErrOutsideAvailability
		}

		total += rate * float64(domain.GranularityMinutes) / 60.0
	}

	return math.Round(total*100) / 100, nil
}

func blockRate(hourlyPrice float64, rules []*domain.AvailabilityRule, blockStart, blockEnd int) (float64, bool) {
	covered := false
	for _, rule := range rules {
		if rule.Validate() != nil {
			continue
		}
		if !rule.Covers(blockStart, blockEnd) {
			continue
		}
		if rule.PriceOverride != nil {
			return *rule.PriceOverride, true
		}
		covered = true
	}
	return hourlyPrice, covered
}
