package create_booking

import (
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// Request запрос на создание бронирования
type Request struct {
	UserID      int64
	CourtID     int64
	Date        time.Time
	StartMinute int
	EndMinute   int
	Notes       *string
}

// Response результат создания бронирования
type Response struct {
	Reservation *domain.Reservation
}
