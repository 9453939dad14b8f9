package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mudasar10147/sportsarena-backend/internal/domain"
	"github.com/mudasar10147/sportsarena-backend/pkg/dbmetrics"
)

var (
	repoNow  = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repoDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func reservationRows(reservations ...*domain.Reservation) *sqlmock.Rows {
	rows := sqlmock.NewRows(reservationColumns)
	for _, r := range reservations {
		rows.AddRow(
			r.ID, r.UserID, r.CourtID, r.Date, r.StartMinute, r.EndMinute,
			r.Status, r.Price, r.ExpiresAt, r.Notes,
			r.CancellationReason, r.CancelledAt, r.CreatedAt, r.UpdatedAt,
		)
	}
	return rows
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)

	deadline := repoNow.Add(24 * time.Hour)
	reservation := &domain.Reservation{
		UserID:      7,
		CourtID:     1,
		Date:        repoDate,
		StartMinute: 600,
		EndMinute:   690,
		Status:      domain.StatusPending,
		Price:       75,
		ExpiresAt:   &deadline,
	}

	mock.ExpectQuery(`INSERT INTO reservations .+ RETURNING id, created_at, updated_at`).
		WithArgs(int64(7), int64(1), repoDate, 600, 690, "pending", 75.0, deadline, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(101), repoNow, repoNow))

	created, err := repo.Create(context.Background(), reservation)

	require.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, repoNow, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		stored := &domain.Reservation{
			ID: 1, UserID: 7, CourtID: 1, Date: repoDate,
			StartMinute: 600, EndMinute: 690,
			Status: domain.StatusConfirmed, Price: 75,
			CreatedAt: repoNow, UpdatedAt: repoNow,
		}

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(reservationRows(stored))

		reservation, err := repo.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(7), reservation.UserID)
		assert.Equal(t, domain.StatusConfirmed, reservation.Status)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(reservationRows())

		_, err := repo.GetByID(context.Background(), 1)

		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("locks the row inside a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		repo := NewRepository(db)

		stored := &domain.Reservation{
			ID: 1, UserID: 7, CourtID: 1, Date: repoDate,
			StartMinute: 600, EndMinute: 690,
			Status: domain.StatusPending, Price: 75,
			CreatedAt: repoNow, UpdatedAt: repoNow,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnRows(reservationRows(stored))

		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

		reservation, err := repo.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), reservation.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_LockOverlapping(t *testing.T) {
	t.Run("conflict found", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		conflictRow := &domain.Reservation{
			ID: 42, UserID: 8, CourtID: 1, Date: repoDate,
			StartMinute: 630, EndMinute: 720,
			Status: domain.StatusConfirmed, Price: 75,
			CreatedAt: repoNow, UpdatedAt: repoNow,
		}

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE .+ start_minute < \$3 AND end_minute > \$4 .+ FOR UPDATE`).
			WillReturnRows(reservationRows(conflictRow))

		conflict, err := repo.LockOverlapping(context.Background(), 1, repoDate, 600, 690, repoNow)

		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, int64(42), conflict.ID)
	})

	t.Run("slot is free", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE .+ FOR UPDATE`).
			WillReturnRows(reservationRows())

		conflict, err := repo.LockOverlapping(context.Background(), 1, repoDate, 600, 690, repoNow)

		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("lock timeout maps to retryable error", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE .+ FOR UPDATE`).
			WillReturnError(&pq.Error{Code: "55P03"})

		_, err := repo.LockOverlapping(context.Background(), 1, repoDate, 600, 690, repoNow)

		assert.ErrorIs(t, err, ErrLockTimeout)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectExec(`UPDATE reservations SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("confirmed", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing reservation", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectExec(`UPDATE reservations SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)

		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_Cancel(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`UPDATE reservations SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs("cancelled", "изменились планы", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 1, "изменились планы")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockExpiring(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT id FROM reservations WHERE status = \$1 AND expires_at <= \$2 ORDER BY expires_at ASC LIMIT 100 FOR UPDATE`).
		WithArgs("pending", repoNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	ids, err := repo.LockExpiring(context.Background(), repoNow, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestRepository_MarkExpired(t *testing.T) {
	t.Run("marks pending batch", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		// Guard по статусу: конкурирующее подтверждение не будет затёрто
		mock.ExpectExec(`UPDATE reservations SET status = \$1, updated_at = NOW\(\) WHERE id IN \(\$2,\$3\) AND status = \$4`).
			WithArgs("expired", int64(1), int64(2), "pending").
			WillReturnResult(sqlmock.NewResult(0, 2))

		affected, err := repo.MarkExpired(context.Background(), []int64{1, 2})

		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("empty batch skips the database", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		affected, err := repo.MarkExpired(context.Background(), nil)

		require.NoError(t, err)
		assert.Zero(t, affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetBlockingByCourtAndDate(t *testing.T) {
	repo, mock := newTestRepository(t)

	deadline := repoNow.Add(time.Hour)
	stored := &domain.Reservation{
		ID: 1, UserID: 7, CourtID: 1, Date: repoDate,
		StartMinute: 600, EndMinute: 690,
		Status: domain.StatusPending, Price: 75, ExpiresAt: &deadline,
		CreatedAt: repoNow, UpdatedAt: repoNow,
	}

	mock.ExpectQuery(`SELECT .+ FROM reservations WHERE court_id = \$1 AND reservation_date = \$2 AND .+ ORDER BY start_minute ASC`).
		WillReturnRows(reservationRows(stored))

	reservations, err := repo.GetBlockingByCourtAndDate(context.Background(), 1, repoDate, repoNow)

	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, domain.StatusPending, reservations[0].Status)
}
