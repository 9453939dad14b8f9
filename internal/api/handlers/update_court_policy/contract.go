package update_court_policy

import (
	"context"

	"github.com/mudasar10147/sportsarena-backend/internal/service/policy/models"
)

type PolicyService interface {
	UpdateCourtPolicy(ctx context.Context, courtID int64, req *models.UpdateCourtPolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
