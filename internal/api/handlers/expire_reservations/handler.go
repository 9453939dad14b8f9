package expire_reservations

import (
	"net/http"

	"github.com/mudasar10147/sportsarena-backend/internal/api/handlers"
)

// ExpireResponse HTTP response model
type ExpireResponse struct {
	Expired int64 `json:"expired"`
}

type Handler struct {
	useCase ExpirePendingUseCase
	metrics Metrics
	logger  Logger
}

// NewHandler создает обработчик ручного запуска чистки просроченных
// pending бронирований. metrics может быть nil
func NewHandler(useCase ExpirePendingUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/reservations/expire
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	expired, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/reservations/expire - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if h.metrics != nil && expired > 0 {
		h.metrics.AddBookingsExpired("manual", int(expired))
	}

	h.logger.Info("POST /admin/reservations/expire - Expired %d reservations", expired)
	handlers.RespondJSON(w, http.StatusOK, ExpireResponse{Expired: expired})
}
