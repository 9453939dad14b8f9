package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	courtRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/court"
	"github.com/mudasar10147/sportsarena-backend/internal/service/policy/models"
)

// Service сервис администрирования политик бронирования
type Service struct {
	policyRepo PolicyRepository
	courtRepo  CourtRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, courtRepo CourtRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		courtRepo:  courtRepo,
		logger:     logger,
	}
}

// GetCourtPolicy возвращает действующую политику корта после разрешения
// иерархии: переопределение корта → переопределение комплекса →
// системные дефолты
func (s *Service) GetCourtPolicy(ctx context.Context, courtID int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetCourtPolicy: fetching policy for court=%d", courtID)

	court, err := s.getCourt(ctx, courtID, "GetCourtPolicy")
	if err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.GetResolvedPolicy(ctx, court.ID, court.FacilityID)
	if err != nil {
		s.logger.Error("GetCourtPolicy: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtPolicy - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(court.ID, policy), nil
}

// UpdateCourtPolicy создает или обновляет переопределение политики корта
// и возвращает действующую политику после изменения
func (s *Service) UpdateCourtPolicy(ctx context.Context, courtID int64, req *models.UpdateCourtPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdateCourtPolicy: updating policy for court=%d", courtID)

	if err := s.validateOverride(req); err != nil {
		s.logger.Warn("UpdateCourtPolicy: validation failed for court=%d: %v", courtID, err)
		return nil, err
	}

	court, err := s.getCourt(ctx, courtID, "UpdateCourtPolicy")
	if err != nil {
		return nil, err
	}

	override := req.ToDomainOverride(court.ID, court.FacilityID)
	if _, err := s.policyRepo.UpsertCourtOverride(ctx, override); err != nil {
		s.logger.Error("UpdateCourtPolicy: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: UpdateCourtPolicy - repository error: %v", ErrInternal, err)
	}

	policy, err := s.policyRepo.GetResolvedPolicy(ctx, court.ID, court.FacilityID)
	if err != nil {
		s.logger.Error("UpdateCourtPolicy: failed to resolve updated policy for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: UpdateCourtPolicy - failed to resolve policy: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateCourtPolicy: successfully updated policy for court=%d", courtID)
	return models.FromDomainPolicy(court.ID, policy), nil
}

// Вспомогательные методы

func (s *Service) getCourt(ctx context.Context, courtID int64, op string) (*domain.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("%s: court id=%d not found", op, courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("%s: failed to get court id=%d: %v", op, courtID, err)
		return nil, fmt.Errorf("%w: %s - failed to get court: %v", ErrInternal, op, err)
	}
	return court, nil
}

// validateOverride валидирует границы переопределяемых полей
func (s *Service) validateOverride(req *models.UpdateCourtPolicyRequest) error {
	if req.MaxAdvanceBookingDays != nil &&
		(*req.MaxAdvanceBookingDays <= 0 || *req.MaxAdvanceBookingDays > domain.MaxAdvanceBookingDaysCap) {
		return fmt.Errorf("%w: maxAdvanceBookingDays must be between 1 and %d", ErrInvalidInput, domain.MaxAdvanceBookingDaysCap)
	}

	if req.MinDurationMinutes != nil &&
		(*req.MinDurationMinutes < domain.MinAllowedDurationMinutes ||
			*req.MinDurationMinutes%domain.GranularityMinutes != 0) {
		return fmt.Errorf("%w: minDurationMinutes must be a positive multiple of %d", ErrInvalidInput, domain.GranularityMinutes)
	}

	if req.MaxDurationMinutes != nil &&
		(*req.MaxDurationMinutes > domain.MaxAllowedDurationMinutes ||
			*req.MaxDurationMinutes%domain.GranularityMinutes != 0) {
		return fmt.Errorf("%w: maxDurationMinutes must be a multiple of %d not exceeding %d",
			ErrInvalidInput, domain.GranularityMinutes, domain.MaxAllowedDurationMinutes)
	}

	if req.MinDurationMinutes != nil && req.MaxDurationMinutes != nil &&
		*req.MinDurationMinutes > *req.MaxDurationMinutes {
		return fmt.Errorf("%w: minDurationMinutes exceeds maxDurationMinutes", ErrInvalidInput)
	}

	if req.BufferMinutes != nil && *req.BufferMinutes < 0 {
		return fmt.Errorf("%w: bufferMinutes must be non-negative", ErrInvalidInput)
	}

	if req.MinAdvanceNoticeMinutes != nil && *req.MinAdvanceNoticeMinutes < 0 {
		return fmt.Errorf("%w: minAdvanceNoticeMinutes must be non-negative", ErrInvalidInput)
	}

	if req.PendingExpirationHours != nil && *req.PendingExpirationHours <= 0 {
		return fmt.Errorf("%w: pendingExpirationHours must be positive", ErrInvalidInput)
	}

	return nil
}
