package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	courtRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/court"
)

// UseCase use case для получения доступных вариантов бронирования
// Путь чтения: блокировки строк не берутся, результат может быть
// моментально устаревшим — финальную проверку делает транзакция
// создания бронирования
type UseCase struct {
	courtRepo       CourtRepository
	ruleRepo        RuleRepository
	reservationRepo ReservationRepository
	blockedRepo     BlockedRepository
	policyRepo      PolicyRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	courtRepo CourtRepository,
	ruleRepo RuleRepository,
	reservationRepo ReservationRepository,
	blockedRepo BlockedRepository,
	policyRepo PolicyRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		courtRepo:       courtRepo,
		ruleRepo:        ruleRepo,
		reservationRepo: reservationRepo,
		blockedRepo:     blockedRepo,
		policyRepo:      policyRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных вариантов бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: court=%d, date=%s, duration=%d",
		req.CourtID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем корт
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !court.Active {
		uc.logger.Warn("GetAvailableSlots: court id=%d is inactive", req.CourtID)
		return nil, ErrCourtInactive
	}

	// 4. Разрешаем политику бронирования (корт → комплекс → дефолты)
	policy, err := uc.policyRepo.GetResolvedPolicy(ctx, court.ID, court.FacilityID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve policy for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	// 5. Валидация даты и длительности против политики
	if err := validateDate(req.Date, now, policy.MaxAdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}
	if err := validateDuration(req.DurationMinutes, policy); err != nil {
		uc.logger.Warn("GetAvailableSlots: duration validation failed: %v", err)
		return nil, err
	}

	// 6. Базовая доступность из правил на день недели
	rules, err := uc.ruleRepo.GetActiveByCourtAndDay(ctx, court.ID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}
	baseBlocks := GenerateBaseBlocks(rules, uc.logger)

	// 7. Занимающие время бронирования на дату
	reservations, err := uc.reservationRepo.GetBlockingByCourtAndDate(ctx, court.ID, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 8. Действующие административные блокировки
	blockedRanges, err := uc.blockedRepo.GetActiveForDate(ctx, court.ID, court.FacilityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked ranges for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
	}

	// 9. Фильтрация и композиция
	freeBlocks := FilterBlocks(baseBlocks, reservations, blockedRanges, court.ID, req.Date, now, policy.BufferMinutes)
	composed := ComposeOptions(freeBlocks, req.DurationMinutes)

	options := make([]Option, len(composed))
	for i, option := range composed {
		options[i] = Option{StartMinute: option.StartMinute, EndMinute: option.EndMinute}
	}

	uc.logger.Info("GetAvailableSlots: court=%d, date=%s: %d free blocks, %d options",
		req.CourtID, req.Date.Format(domain.DateFormat), len(freeBlocks), len(options))

	return &Response{
		CourtID:         req.CourtID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		FreeBlocks:      freeBlocks,
		Options:         options,
	}, nil
}
