package create_booking

import (
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	createBooking "github.com/mudasar10147/sportsarena-backend/internal/usecase/create_booking"
	"github.com/mudasar10147/sportsarena-backend/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourtID   int64   `json:"courtId"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "11:30"
	Notes     *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	CourtID         int64   `json:"courtId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	ExpiresAt       *string `json:"expiresAt,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	startMinute, err := startTime.Minutes()
	if err != nil {
		return nil, err
	}

	endMinute, err := endTime.Minutes()
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		CourtID:     r.CourtID,
		Date:        date,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *ReservationResponse {
	reservation := resp.Reservation

	response := &ReservationResponse{
		ID:              reservation.ID,
		UserID:          reservation.UserID,
		CourtID:         reservation.CourtID,
		Date:            reservation.Date.Format(domain.DateFormat),
		StartTime:       types.NewTimeStringFromMinutes(reservation.StartMinute).String(),
		EndTime:         types.NewTimeStringFromMinutes(reservation.EndMinute).String(),
		DurationMinutes: reservation.DurationMinutes(),
		Status:          string(reservation.Status),
		Price:           reservation.Price,
		Notes:           reservation.Notes,
		CreatedAt:       reservation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       reservation.UpdatedAt.Format(time.RFC3339),
	}

	if reservation.ExpiresAt != nil {
		expiresStr := reservation.ExpiresAt.Format(time.RFC3339)
		response.ExpiresAt = &expiresStr
	}

	return response
}
