package expire_pending

import (
	"context"
	"fmt"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// UseCase use case перевода просроченных pending бронирований в expired
//
// Чистка — оптимизация хранилища, а не источник корректности:
// читающие запросы и транзакция создания бронирования уже исключают
// просроченные pending предикатом по expires_at. Запуск периодический
// (фоновый тикер) либо ручной через административный endpoint
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	batchSize       int
}

// NewUseCase создает новый экземпляр use case
// batchSize <= 0 заменяется дефолтным размером пачки
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
	batchSize int,
) *UseCase {
	if batchSize <= 0 {
		batchSize = domain.DefaultExpireBatchSize
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		batchSize:       batchSize,
	}
}

// Execute переводит одну пачку просроченных pending бронирований
// в expired и возвращает количество затронутых записей
//
// Выборка и обновление идут в одной транзакции с блокировкой строк:
// параллельный запуск чистки или конкурирующее подтверждение
// дождутся коммита и увидят уже обновленный статус. Гонка
// "подтвердили за мгновение до чистки" исчезает благодаря guard'у
// status = pending в самом UPDATE
func (uc *UseCase) Execute(ctx context.Context) (int64, error) {
	now := uc.timeProvider.Now()

	var expired int64
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		ids, txErr := uc.reservationRepo.LockExpiring(txCtx, now, uc.batchSize)
		if txErr != nil {
			return fmt.Errorf("lock expiring: %w", txErr)
		}
		if len(ids) == 0 {
			return nil
		}

		expired, txErr = uc.reservationRepo.MarkExpired(txCtx, ids)
		if txErr != nil {
			return fmt.Errorf("mark expired: %w", txErr)
		}
		return nil
	})

	if err != nil {
		uc.logger.Error("ExpirePending: sweep failed: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if expired > 0 {
		uc.logger.Info("ExpirePending: marked %d reservations as expired", expired)
	} else {
		uc.logger.Debug("ExpirePending: nothing to expire")
	}

	return expired, nil
}
