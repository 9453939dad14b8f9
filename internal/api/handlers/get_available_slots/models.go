package get_available_slots

import (
	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	getAvailableSlots "github.com/mudasar10147/sportsarena-backend/internal/usecase/get_available_slots"
	"github.com/mudasar10147/sportsarena-backend/pkg/types"
)

// SlotOption вариант бронирования в HTTP ответе
type SlotOption struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CourtID         int64        `json:"courtId"`
	Date            string       `json:"date"`
	DurationMinutes int          `json:"durationMinutes"`
	Options         []SlotOption `json:"options"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	options := make([]SlotOption, len(resp.Options))
	for i, option := range resp.Options {
		options[i] = SlotOption{
			StartTime: types.NewTimeStringFromMinutes(option.StartMinute).String(),
			EndTime:   types.NewTimeStringFromMinutes(option.EndMinute).String(),
		}
	}

	return &AvailableSlotsResponse{
		CourtID:         resp.CourtID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Options:         options,
	}
}
