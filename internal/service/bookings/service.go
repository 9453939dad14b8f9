package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	courtRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/court"
	reservationRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/reservation"
	"github.com/mudasar10147/sportsarena-backend/internal/service/bookings/models"
)

// Service сервис управления жизненным циклом бронирований
// Создание живет в usecase create_booking; здесь переходы по статусам
// и чтение истории
type Service struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetCourtReservations получает бронирования корта с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных
// бронирований. Операторский endpoint
//
// Примеры использования:
// - Занимающие время бронирования: GetCourtReservations(ctx, &GetCourtReservationsRequest{CourtID: 123})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные и просроченные: IncludeInactive = true
func (s *Service) GetCourtReservations(ctx context.Context, req *models.GetCourtReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCourtReservations: fetching reservations for court=%d", req.CourtID)

	if _, err := s.courtRepo.GetByID(ctx, req.CourtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("GetCourtReservations: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetCourtReservations: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtReservations - failed to get court: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCourtReservations: invalid filter for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByCourtWithFilter(ctx, filter, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetCourtReservations: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtReservations: fetched %d reservations for court=%d", len(reservations), req.CourtID)
	return models.FromDomainReservationList(reservations), nil
}

// Confirm подтверждает pending бронирование. Операторский endpoint
// Просроченное pending подтвердить нельзя, даже если фоновая чистка
// еще не перевела его в expired
func (s *Service) Confirm(ctx context.Context, id int64) error {
	s.logger.Info("Confirm: confirming reservation id=%d", id)

	return s.transition(ctx, id, domain.StatusConfirmed, func(r *domain.Reservation, now time.Time) error {
		if !r.CanBeConfirmed(now) {
			s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", id, r.Status)
			return ErrCannotConfirm
		}
		return nil
	})
}

// Reject отклоняет pending бронирование. Операторский endpoint
func (s *Service) Reject(ctx context.Context, id int64) error {
	s.logger.Info("Reject: rejecting reservation id=%d", id)

	return s.transition(ctx, id, domain.StatusRejected, func(r *domain.Reservation, now time.Time) error {
		if !r.CanBeRejected(now) {
			s.logger.Warn("Reject: reservation id=%d cannot be rejected, status=%s", id, r.Status)
			return ErrCannotReject
		}
		return nil
	})
}

// Complete переводит подтвержденное бронирование в completed
// после окончания его временного окна. Операторский endpoint
func (s *Service) Complete(ctx context.Context, id int64) error {
	s.logger.Info("Complete: completing reservation id=%d", id)

	return s.transition(ctx, id, domain.StatusCompleted, func(r *domain.Reservation, now time.Time) error {
		if !r.CanBeCompleted(now) {
			s.logger.Warn("Complete: reservation id=%d cannot be completed, status=%s", id, r.Status)
			return ErrCannotComplete
		}
		return nil
	})
}

// Cancel отменяет бронирование по инициативе владельца
// Отменить можно только своё pending или confirmed бронирование
// и только до начала его временного окна
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, txErr := s.reservationRepo.GetByID(txCtx, id)
		if txErr != nil {
			return txErr
		}

		if reservation.UserID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, id)
			return ErrAccessDenied
		}

		if !reservation.CanBeCancelled(s.timeProvider.Now()) {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
			return ErrCannotCancel
		}

		return s.reservationRepo.Cancel(txCtx, id, req.CancellationReason)
	})

	return s.mapTransitionError(err, id, "Cancel")
}

// transition выполняет переход по статусам в транзакции:
// чтение текущего состояния и обновление атомарны относительно
// параллельных переходов и фоновой чистки
func (s *Service) transition(
	ctx context.Context,
	id int64,
	target domain.ReservationStatus,
	check func(r *domain.Reservation, now time.Time) error,
) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, txErr := s.reservationRepo.GetByID(txCtx, id)
		if txErr != nil {
			return txErr
		}

		if txErr := check(reservation, s.timeProvider.Now()); txErr != nil {
			return txErr
		}

		return s.reservationRepo.UpdateStatus(txCtx, id, target)
	})

	return s.mapTransitionError(err, id, string(target))
}

func (s *Service) mapTransitionError(err error, id int64, op string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		s.logger.Warn("%s: reservation id=%d not found", op, id)
		return ErrReservationNotFound
	case errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrCannotConfirm),
		errors.Is(err, ErrCannotReject),
		errors.Is(err, ErrCannotCancel),
		errors.Is(err, ErrCannotComplete):
		return err
	}

	s.logger.Error("%s: transaction failed for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
}
