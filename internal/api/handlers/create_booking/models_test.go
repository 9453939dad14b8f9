package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	createBooking "github.com/mudasar10147/sportsarena-backend/internal/usecase/create_booking"
)

func TestCreateBookingRequest_ToUseCaseRequest(t *testing.T) {
	t.Run("valid request converts times to minutes", func(t *testing.T) {
		req := &CreateBookingRequest{
			CourtID:   1,
			Date:      "2025-06-16",
			StartTime: "10:00",
			EndTime:   "11:30",
		}

		ucReq, err := req.ToUseCaseRequest(7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), ucReq.UserID)
		assert.Equal(t, int64(1), ucReq.CourtID)
		assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), ucReq.Date)
		assert.Equal(t, 600, ucReq.StartMinute)
		assert.Equal(t, 690, ucReq.EndMinute)
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		req := &CreateBookingRequest{CourtID: 1, Date: "16.06.2025", StartTime: "10:00", EndTime: "11:00"}

		_, err := req.ToUseCaseRequest(7)

		assert.Error(t, err)
	})

	t.Run("invalid start time is rejected", func(t *testing.T) {
		req := &CreateBookingRequest{CourtID: 1, Date: "2025-06-16", StartTime: "10:70", EndTime: "11:00"}

		_, err := req.ToUseCaseRequest(7)

		assert.Error(t, err)
	})

	t.Run("invalid end time is rejected", func(t *testing.T) {
		req := &CreateBookingRequest{CourtID: 1, Date: "2025-06-16", StartTime: "10:00", EndTime: "25:00"}

		_, err := req.ToUseCaseRequest(7)

		assert.Error(t, err)
	})
}

func TestFromUseCaseResponse(t *testing.T) {
	createdAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	expiresAt := createdAt.Add(24 * time.Hour)

	resp := FromUseCaseResponse(&createBooking.Response{
		Reservation: &domain.Reservation{
			ID:          101,
			UserID:      7,
			CourtID:     1,
			Date:        time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			StartMinute: 600,
			EndMinute:   690,
			Status:      domain.StatusPending,
			Price:       75,
			ExpiresAt:   &expiresAt,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		},
	})

	assert.Equal(t, "2025-06-16", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:30", resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, expiresAt.Format(time.RFC3339), *resp.ExpiresAt)
}
