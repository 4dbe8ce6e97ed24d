package partner

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/dbmetrics"
)

var partnerRowColumns = []string{
	"id", "name", "email", "longitude", "latitude", "status", "availability", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *dbmetrics.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), mock, wrapped
}

func TestRepository_FindNearby(t *testing.T) {
	repo, mock, _ := newMockRepo(t)
	now := time.Now()
	point := domain.GeoPoint{Longitude: 174.76, Latitude: -36.84}

	rows := sqlmock.NewRows(append(partnerRowColumns, "distance_km")).
		AddRow(int64(2), "Near", "near@example.com", 174.77, -36.85, "active", true, now, now, 1.2).
		AddRow(int64(1), "Far", "far@example.com", 174.9, -36.9, "active", true, now, now, 13.4)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE status = $3 AND availability = $4 AND location IS NOT NULL " +
			"AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7) " +
			"ORDER BY distance_km ASC, id ASC",
	)).
		WithArgs(174.76, -36.84, "active", true, 174.76, -36.84, 50000.0).
		WillReturnRows(rows)

	candidates, err := repo.FindNearby(context.Background(), point, 50000)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, int64(2), candidates[0].Partner.ID)
	assert.InDelta(t, 1.2, candidates[0].DistanceKm, 1e-9)
	require.NotNil(t, candidates[0].Partner.Location)
	assert.Equal(t, domain.PartnerActive, candidates[0].Partner.Status)
	assert.Equal(t, int64(1), candidates[1].Partner.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockByID_InTransaction(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM partners WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(partnerRowColumns).
			AddRow(int64(5), "Bob", "bob@example.com", nil, nil, "active", false, now, now))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	p, err := repo.LockByID(dbmetrics.WithTx(context.Background(), tx), 5)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "Bob", p.Name)
	assert.Nil(t, p.Location)
	assert.False(t, p.IsAssignable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectQuery("FROM partners").
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO partners").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Partner{
		Name:   "Bob",
		Email:  "bob@example.com",
		Status: domain.PartnerPending,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRepository_UpdateAvailability(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE partners SET availability = $1, updated_at = NOW() WHERE id = $2")).
			WithArgs(true, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateAvailability(context.Background(), 5, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, _ := newMockRepo(t)

		mock.ExpectExec("UPDATE partners").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAvailability(context.Background(), 5, true)
		assert.ErrorIs(t, err, ErrPartnerNotFound)
	})
}

func TestRepository_UpdateLocation(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET location = ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography")).
		WithArgs(174.76, -36.84, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLocation(context.Background(), 5, domain.GeoPoint{Longitude: 174.76, Latitude: -36.84})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
