package create_booking

import (
	"errors"
	"net/http"

	"github.com/mudasar10147/sportsarena-backend/internal/api/handlers"
	"github.com/mudasar10147/sportsarena-backend/internal/api/middleware"
	createBooking "github.com/mudasar10147/sportsarena-backend/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgCourtNotFound         = "корт не найден"
	msgCourtInactive         = "корт неактивен"
	msgInvalidTimeRange      = "некорректный временной интервал"
	msgPastDate              = "дата в прошлом"
	msgAdvanceWindowExceeded = "дата за пределами окна бронирования"
	msgInsufficientNotice    = "слишком поздно для бронирования этого времени"
	msgDurationOutOfRange    = "длительность вне допустимых границ"
	msgOutsideAvailability   = "запрошенное время вне расписания корта"
	msgBookingConflict       = "время уже занято другим бронированием"
	msgTimeBlocked           = "время закрыто для бронирования"
	msgLockTimeout           = "корт временно занят, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics Metrics
	logger  Logger
}

// NewHandler создает обработчик создания бронирования
// metrics может быть nil, если сбор метрик выключен
func NewHandler(useCase CreateBookingUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.observeOutcome(err)
		switch {
		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrCourtInactive):
			h.logger.Warn("POST /bookings - Court inactive: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, msgCourtInactive)

		case errors.Is(err, createBooking.ErrInvalidTimeRange),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrAdvanceWindowExceeded):
			h.logger.Warn("POST /bookings - Advance window exceeded: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgAdvanceWindowExceeded)

		case errors.Is(err, createBooking.ErrInsufficientNotice):
			h.logger.Warn("POST /bookings - Insufficient notice: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgInsufficientNotice)

		case errors.Is(err, createBooking.ErrDurationOutOfRange):
			h.logger.Warn("POST /bookings - Duration out of range: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgDurationOutOfRange)

		case errors.Is(err, createBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Booking conflict: user_id=%d, court_id=%d, error=%v", userID, req.CourtID, err)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, createBooking.ErrTimeBlocked):
			h.logger.Warn("POST /bookings - Time blocked: user_id=%d, court_id=%d, error=%v", userID, req.CourtID, err)
			handlers.RespondConflict(w, msgTimeBlocked)

		case errors.Is(err, createBooking.ErrLockTimeout):
			h.logger.Warn("POST /bookings - Lock timeout: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLockTimeout)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.IncBookingCreated("created")
	}

	h.logger.Info("POST /bookings - Reservation created: reservation_id=%d, user_id=%d, court_id=%d",
		result.Reservation.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) observeOutcome(err error) {
	if h.metrics == nil {
		return
	}

	switch {
	case errors.Is(err, createBooking.ErrBookingConflict):
		h.metrics.IncBookingCreated("conflict")
	case errors.Is(err, createBooking.ErrTimeBlocked):
		h.metrics.IncBookingCreated("blocked")
	case errors.Is(err, createBooking.ErrInternal):
		h.metrics.IncBookingCreated("error")
	default:
		h.metrics.IncBookingCreated("rejected")
	}
}
