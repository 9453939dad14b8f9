package get_available_slots

import (
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// Request модель запроса на получение доступных вариантов бронирования
type Request struct {
	CourtID         int64     // ID корта
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Запрошенная длительность, кратная 30 минутам
}

// Response модель ответа со свободными блоками и вариантами бронирования
type Response struct {
	CourtID         int64
	Date            time.Time
	DurationMinutes int
	FreeBlocks      []domain.TimeBlock // Свободные 30-минутные блоки после фильтрации
	Options         []Option           // Варианты запрошенной длительности
}

// Option вариант бронирования: непрерывный интервал запрошенной длительности
type Option struct {
	StartMinute int
	EndMinute   int
}
