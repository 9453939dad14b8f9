package update_court_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mudasar10147/sportsarena-backend/internal/api/handlers"
	policyService "github.com/mudasar10147/sportsarena-backend/internal/service/policy"
	"github.com/mudasar10147/sportsarena-backend/internal/service/policy/models"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCourtNotFound      = "корт не найден"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/courts/{courtId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /courts/{id}/policy - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req models.UpdateCourtPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /courts/{id}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	policy, err := h.service.UpdateCourtPolicy(r.Context(), courtID, &req)
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrCourtNotFound):
			h.logger.Warn("PUT /courts/{id}/policy - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, policyService.ErrInvalidInput):
			h.logger.Warn("PUT /courts/{id}/policy - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /courts/{id}/policy - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /courts/{id}/policy - Policy updated for court_id=%d", courtID)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
