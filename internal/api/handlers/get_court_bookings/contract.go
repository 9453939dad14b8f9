package get_court_bookings

import (
	"context"

	"github.com/mudasar10147/sportsarena-backend/internal/service/bookings/models"
)

type BookingService interface {
	GetCourtReservations(ctx context.Context, req *models.GetCourtReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
