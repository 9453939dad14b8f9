package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mudasar10147/sportsarena-backend/internal/api/handlers"
	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	getAvailableSlots "github.com/mudasar10147/sportsarena-backend/internal/usecase/get_available_slots"
)

const (
	msgInvalidCourtID        = "некорректный ID корта"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration       = "некорректная длительность, ожидается положительное кратное 30 минутам"
	msgCourtNotFound         = "корт не найден"
	msgCourtInactive         = "корт неактивен"
	msgPastDate              = "дата в прошлом"
	msgAdvanceWindowExceeded = "дата за пределами окна бронирования"
	msgDurationOutOfRange    = "длительность вне допустимых границ"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/available-slots?date=YYYY-MM-DD&durationMinutes=90
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/available-slots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationMinutes, err := strconv.Atoi(r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CourtID:         courtID,
		Date:            date,
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/available-slots - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getAvailableSlots.ErrCourtInactive):
			h.logger.Warn("GET /courts/{id}/available-slots - Court inactive: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgCourtInactive)

		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /courts/{id}/available-slots - Past date: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrAdvanceWindowExceeded):
			h.logger.Warn("GET /courts/{id}/available-slots - Advance window exceeded: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgAdvanceWindowExceeded)

		case errors.Is(err, getAvailableSlots.ErrInvalidDuration),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/available-slots - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrDurationOutOfRange):
			h.logger.Warn("GET /courts/{id}/available-slots - Duration out of range: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgDurationOutOfRange)

		default:
			h.logger.Error("GET /courts/{id}/available-slots - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/available-slots - %d options for court_id=%d, date=%s",
		len(result.Options), courtID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
