package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	blockedRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/blocked"
	courtRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/court"
	reservationRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/reservation"
)

// UseCase use case создания бронирования
//
// Вся проверка доступности и вставка выполняются в одной транзакции
// с пессимистическими блокировками строк. Фиксированный порядок взятия
// блокировок (корт → бронирования → блокировки времени) исключает
// взаимные блокировки между параллельными транзакциями. Из двух
// конкурирующих запросов на один интервал первый возьмет блокировки
// и вставит pending, второй дождется коммита, увидит вставленную
// строку и получит конфликт
type UseCase struct {
	courtRepo       CourtRepository
	ruleRepo        RuleRepository
	reservationRepo ReservationRepository
	blockedRepo     BlockedRepository
	policyRepo      PolicyRepository
	txManager       TransactionManager
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
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		courtRepo:       courtRepo,
		ruleRepo:        ruleRepo,
		reservationRepo: reservationRepo,
		blockedRepo:     blockedRepo,
		policyRepo:      policyRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, court=%d, date=%s, [%d, %d)",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartMinute, req.EndMinute)

	// 1. Валидация входных данных без обращения к БД
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Политика и бизнес-валидация до открытия транзакции:
	// заведомо некорректный запрос не должен брать блокировки
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !court.Active {
		return nil, ErrCourtInactive
	}

	policy, err := uc.policyRepo.GetResolvedPolicy(ctx, court.ID, court.FacilityID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve policy for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}

	if err := validateAgainstPolicy(req, now, policy); err != nil {
		uc.logger.Warn("CreateBooking: policy validation failed: %v", err)
		return nil, err
	}

	// 3. Транзакция с проверками под блокировками и вставкой
	var created *domain.Reservation
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, txErr := uc.createInTx(txCtx, req, now, policy)
		if txErr != nil {
			return txErr
		}
		created = reservation
		return nil
	})

	if err != nil {
		if isBusinessError(err) {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created reservation id=%d, price=%.2f, expires_at=%v",
		created.ID, created.Price, created.ExpiresAt)

	return &Response{Reservation: created}, nil
}

// createInTx тело транзакции создания бронирования
// Порядок взятия блокировок фиксирован: корт → бронирования → блокировки
func (uc *UseCase) createInTx(ctx context.Context, req *Request, now time.Time, policy domain.BookingPolicy) (*domain.Reservation, error) {
	// 3.1. Блокируем строку корта — точка сериализации всех
	// бронирований этого корта
	court, err := uc.courtRepo.LockForBooking(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		if errors.Is(err, courtRepo.ErrLockTimeout) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: failed to lock court: %v", ErrInternal, err)
	}
	if !court.Active {
		// Корт мог быть деактивирован между проверкой и транзакцией
		return nil, ErrCourtInactive
	}

	// 3.2. Блокирующая проверка пересечения с бронированиями
	// Конфликт диагностируется раньше проверки покрытия правилами:
	// занятый интервал отдается как конфликт, даже если он еще
	// и выпадает из расписания
	conflict, err := uc.reservationRepo.LockOverlapping(ctx, court.ID, req.Date, req.StartMinute, req.EndMinute, now)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrLockTimeout) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: failed to lock overlapping reservations: %v", ErrInternal, err)
	}
	if conflict != nil {
		return nil, &ConflictError{
			ReservationID: conflict.ID,
			StartMinute:   conflict.StartMinute,
			EndMinute:     conflict.EndMinute,
			Status:        conflict.Status,
		}
	}

	// 3.3. Блокирующая проверка административных блокировок
	blocked, err := uc.blockedRepo.LockBlocking(ctx, court.ID, court.FacilityID, req.Date, req.StartMinute, req.EndMinute)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrLockTimeout) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: failed to lock blocked ranges: %v", ErrInternal, err)
	}
	if blocked != nil {
		return nil, &BlockedError{
			RangeID: blocked.ID,
			Kind:    blocked.Kind,
			Reason:  blocked.Reason,
		}
	}

	// 3.4. Покрытие правилами доступности и расчет стоимости
	rules, err := uc.ruleRepo.GetActiveByCourtAndDay(ctx, court.ID, int(req.Date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	price, err := calculatePrice(court, rules, req.StartMinute, req.EndMinute)
	if err != nil {
		return nil, err
	}

	// 3.5. Вставка pending бронирования с дедлайном подтверждения
	expiresAt := now.Add(time.Duration(policy.PendingExpirationHours) * time.Hour)
	reservation := &domain.Reservation{
		UserID:      req.UserID,
		CourtID:     court.ID,
		Date:        startOfDay(req.Date),
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		Status:      domain.StatusPending,
		Price:       price,
		ExpiresAt:   &expiresAt,
		Notes:       req.Notes,
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrLockTimeout) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	return created, nil
}

// isBusinessError отличает ожидаемый бизнес-отказ от инфраструктурного
// сбоя: первый логируется как Warn и отдается наружу как есть
func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrCourtNotFound,
		ErrCourtInactive,
		ErrOutsideAvailability,
		ErrBookingConflict,
		ErrTimeBlocked,
		ErrLockTimeout,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
