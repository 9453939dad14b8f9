package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	courtRepo "github.com/mudasar10147/sportsarena-backend/internal/infra/storage/court"
	"github.com/mudasar10147/sportsarena-backend/pkg/ptr"
)

// fakeStore общее состояние in-memory репозиториев
// Мьютекс имитирует сериализацию конкурирующих транзакций блокировкой
// строки корта: тело транзакции выполняется целиком под мьютексом
type fakeStore struct {
	mu sync.Mutex

	court        *domain.Court
	rules        []*domain.AvailabilityRule
	reservations []*domain.Reservation
	blocked      []*domain.BlockedRange
	policy       domain.BookingPolicy

	nextID int64
}

type fakeTxManager struct{ store *fakeStore }

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return fn(ctx)
}

type fakeCourtRepo struct{ store *fakeStore }

func (r *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	if r.store.court == nil || r.store.court.ID != id {
		return nil, courtRepo.ErrCourtNotFound
	}
	court := *r.store.court
	return &court, nil
}

func (r *fakeCourtRepo) LockForBooking(ctx context.Context, id int64) (*domain.Court, error) {
	return r.GetByID(ctx, id)
}

type fakeRuleRepo struct{ store *fakeStore }

func (r *fakeRuleRepo) GetActiveByCourtAndDay(ctx context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)
	for _, rule := range r.store.rules {
		if rule.CourtID == courtID && rule.DayOfWeek == dayOfWeek && rule.Active {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

type fakeReservationRepo struct{ store *fakeStore }

func (r *fakeReservationRepo) LockOverlapping(ctx context.Context, courtID int64, date time.Time, startMinute, endMinute int, now time.Time) (*domain.Reservation, error) {
	for _, res := range r.store.reservations {
		if res.CourtID != courtID || !res.Date.Equal(date) {
			continue
		}
		if !res.BlocksAvailability(now) {
			continue
		}
		if domain.DoOverlap(res.StartMinute, res.EndMinute, startMinute, endMinute) {
			found := *res
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	r.store.nextID++
	created := *reservation
	created.ID = r.store.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.store.reservations = append(r.store.reservations, &created)
	result := created
	return &result, nil
}

type fakeBlockedRepo struct{ store *fakeStore }

func (r *fakeBlockedRepo) LockBlocking(ctx context.Context, courtID, facilityID int64, date time.Time, startMinute, endMinute int) (*domain.BlockedRange, error) {
	for _, b := range r.store.blocked {
		if !b.AppliesToCourt(courtID) || !b.AppliesTo(date) {
			continue
		}
		start, end := b.Window()
		if domain.DoOverlap(start, end, startMinute, endMinute) {
			found := *b
			return &found, nil
		}
	}
	return nil, nil
}

type fakePolicyRepo struct{ store *fakeStore }

func (r *fakePolicyRepo) GetResolvedPolicy(ctx context.Context, courtID, facilityID int64) (domain.BookingPolicy, error) {
	return r.store.policy, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, args ...interface{})  {}
func (nopLogger) Warn(format string, args ...interface{})  {}
func (nopLogger) Error(format string, args ...interface{}) {}
func (nopLogger) Debug(format string, args ...interface{}) {}

var (
	bookingNow  = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	bookingDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC) // понедельник
)

func newStore() *fakeStore {
	return &fakeStore{
		court: &domain.Court{ID: 1, FacilityID: 10, Name: "Корт 1", HourlyPrice: 50, Active: true},
		rules: []*domain.AvailabilityRule{
			// Понедельник 09:00-22:00
			{ID: 1, CourtID: 1, DayOfWeek: 1, StartMinute: 540, EndMinute: 1320, Active: true},
		},
		policy: domain.BookingPolicy{
			MaxAdvanceBookingDays:   30,
			MinDurationMinutes:      30,
			MaxDurationMinutes:      240,
			BufferMinutes:           0,
			MinAdvanceNoticeMinutes: 60,
			PendingExpirationHours:  24,
		},
	}
}

func newBookingUseCase(store *fakeStore) *UseCase {
	uc := NewUseCase(
		&fakeCourtRepo{store: store},
		&fakeRuleRepo{store: store},
		&fakeReservationRepo{store: store},
		&fakeBlockedRepo{store: store},
		&fakePolicyRepo{store: store},
		&fakeTxManager{store: store},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: bookingNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		CourtID:     1,
		Date:        bookingDate,
		StartMinute: 600,
		EndMinute:   690,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	store := newStore()
	uc := newBookingUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	reservation := resp.Reservation
	assert.Equal(t, int64(1), reservation.ID)
	assert.Equal(t, int64(7), reservation.UserID)
	assert.Equal(t, domain.StatusPending, reservation.Status)
	assert.Equal(t, bookingDate, reservation.Date)
	// 90 минут по 50/час
	assert.Equal(t, 75.0, reservation.Price)
	require.NotNil(t, reservation.ExpiresAt)
	assert.Equal(t, bookingNow.Add(24*time.Hour), *reservation.ExpiresAt)
}

func TestUseCase_Execute_PriceOverride(t *testing.T) {
	store := newStore()
	store.rules = []*domain.AvailabilityRule{
		// 09:00-11:00 по повышенному тарифу, далее базовый
		{ID: 1, CourtID: 1, DayOfWeek: 1, StartMinute: 540, EndMinute: 660, PriceOverride: ptr.Ptr(80.0), Active: true},
		{ID: 2, CourtID: 1, DayOfWeek: 1, StartMinute: 660, EndMinute: 1320, Active: true},
	}
	uc := newBookingUseCase(store)

	req := validRequest()
	req.StartMinute = 600 // 10:00-12:00: час по 80 и час по 50
	req.EndMinute = 720

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 130.0, resp.Reservation.Price)
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	store := newStore()
	deadline := bookingNow.Add(time.Hour)
	store.reservations = []*domain.Reservation{
		{ID: 42, CourtID: 1, Date: bookingDate, StartMinute: 630, EndMinute: 720, Status: domain.StatusPending, ExpiresAt: &deadline},
	}
	uc := newBookingUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrBookingConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(42), conflict.ReservationID)
	assert.Equal(t, domain.StatusPending, conflict.Status)
}

// Интервал одновременно занят и выпадает из расписания: клиент должен
// увидеть конфликт, а не отказ по расписанию
func TestUseCase_Execute_ConflictReportedBeforeAvailability(t *testing.T) {
	store := newStore()
	deadline := bookingNow.Add(time.Hour)
	store.reservations = []*domain.Reservation{
		{ID: 42, CourtID: 1, Date: bookingDate, StartMinute: 480, EndMinute: 570, Status: domain.StatusConfirmed, ExpiresAt: &deadline},
	}
	uc := newBookingUseCase(store)

	// 08:00-09:30 начинается до открытия корта в 09:00
	req := validRequest()
	req.StartMinute = 480
	req.EndMinute = 570

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrBookingConflict)
	assert.NotErrorIs(t, err, ErrOutsideAvailability)
}

func TestUseCase_Execute_ExpiredPendingDoesNotConflict(t *testing.T) {
	store := newStore()
	deadline := bookingNow.Add(-time.Hour)
	store.reservations = []*domain.Reservation{
		{ID: 42, CourtID: 1, Date: bookingDate, StartMinute: 630, EndMinute: 720, Status: domain.StatusPending, ExpiresAt: &deadline},
	}
	uc := newBookingUseCase(store)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
}

func TestUseCase_Execute_Blocked(t *testing.T) {
	store := newStore()
	store.blocked = []*domain.BlockedRange{
		{
			ID:          5,
			FacilityID:  10,
			Kind:        domain.BlockOneTime,
			Date:        ptr.Ptr(bookingDate),
			StartMinute: ptr.Ptr(600),
			EndMinute:   ptr.Ptr(660),
			Reason:      "техобслуживание",
			Active:      true,
		},
	}
	uc := newBookingUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrTimeBlocked)

	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, int64(5), blocked.RangeID)
	assert.Equal(t, "техобслуживание", blocked.Reason)
}

func TestUseCase_Execute_OutsideAvailability(t *testing.T) {
	store := newStore()
	uc := newBookingUseCase(store)

	req := validRequest()
	req.StartMinute = 480 // 08:00, правило начинается в 09:00
	req.EndMinute = 570

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestUseCase_Execute_SpanningAdjacentRules(t *testing.T) {
	store := newStore()
	store.rules = []*domain.AvailabilityRule{
		{ID: 1, CourtID: 1, DayOfWeek: 1, StartMinute: 540, EndMinute: 660, Active: true},
		{ID: 2, CourtID: 1, DayOfWeek: 1, StartMinute: 660, EndMinute: 780, Active: true},
	}
	uc := newBookingUseCase(store)

	// Интервал пересекает стык правил 11:00
	req := validRequest()
	req.StartMinute = 630
	req.EndMinute = 720

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 75.0, resp.Reservation.Price)
}

func TestUseCase_Execute_PolicyValidation(t *testing.T) {
	t.Run("insufficient notice", func(t *testing.T) {
		store := newStore()
		uc := newBookingUseCase(store)

		// Бронирование на сегодня впритык: старт 12:30 при требовании 60 минут
		req := validRequest()
		req.Date = bookingNow
		req.StartMinute = 750
		req.EndMinute = 840

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInsufficientNotice)
	})

	t.Run("past date", func(t *testing.T) {
		uc := newBookingUseCase(newStore())

		req := validRequest()
		req.Date = bookingNow.AddDate(0, 0, -1)

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("beyond advance window", func(t *testing.T) {
		uc := newBookingUseCase(newStore())

		req := validRequest()
		req.Date = bookingNow.AddDate(0, 0, 31)

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrAdvanceWindowExceeded)
	})

	t.Run("duration above maximum", func(t *testing.T) {
		uc := newBookingUseCase(newStore())

		req := validRequest()
		req.StartMinute = 540
		req.EndMinute = 810 // 270 минут при максимуме 240

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrDurationOutOfRange)
	})
}

func TestUseCase_Execute_InputValidation(t *testing.T) {
	uc := newBookingUseCase(newStore())

	t.Run("misaligned bounds", func(t *testing.T) {
		req := validRequest()
		req.StartMinute = 615

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("inverted range", func(t *testing.T) {
		req := validRequest()
		req.StartMinute = 690
		req.EndMinute = 600

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("missing user", func(t *testing.T) {
		req := validRequest()
		req.UserID = 0

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_Execute_InactiveCourt(t *testing.T) {
	store := newStore()
	store.court.Active = false
	uc := newBookingUseCase(store)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCourtInactive)
}

func TestUseCase_Execute_CourtNotFound(t *testing.T) {
	store := newStore()
	uc := newBookingUseCase(store)

	req := validRequest()
	req.CourtID = 99

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCourtNotFound)
}

// Десять конкурирующих запросов на один и тот же интервал: ровно один
// должен создать бронирование, остальные получить конфликт
func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	store := newStore()
	uc := newBookingUseCase(store)

	const workers = 10
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			req := validRequest()
			req.UserID = userID
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	succeeded, conflicted := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrBookingConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, store.reservations, 1)
}
