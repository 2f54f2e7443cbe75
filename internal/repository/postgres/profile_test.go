package postgres_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository/postgres"
)

var profileRows = []string{
	"id", "username", "first_name", "last_name", "email", "role", "address",
	"contact_number", "avatar_url", "subscription", "password_hash", "created_at", "updated_at",
}

func profileRow(id string, role domain.Role) []driver.Value {
	now := time.Now()
	return []driver.Value{id, "u-" + id, "First", "Last", id + "@example.com", role, "Fresno", "555-0100", "", domain.SubscriptionFree, "", now, now}
}

func TestProfileRepository_List(t *testing.T) {
	t.Run("Excludes admin accounts", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ FROM profiles WHERE role != 'admin'\) AS sub`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`FROM profiles WHERE role != 'admin' ORDER BY created_at DESC, id LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(10), int32(0)).
			WillReturnRows(sqlmock.NewRows(profileRows).
				AddRow(profileRow("p1", domain.RoleFarmer)...).
				AddRow(profileRow("p2", domain.RoleLender)...))

		repo := postgres.NewProfileRepository(db)
		profiles, total, err := repo.List(context.Background(), "", "", 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Len(t, profiles, 2)
		assert.Equal(t, "p1", profiles[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Role and search filters", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM \(.+ AND role = \$1 AND \(first_name ILIKE \$2 OR last_name ILIKE \$2 OR email ILIKE \$2 OR address ILIKE \$2\)\) AS sub`).
			WithArgs(domain.RoleFarmer, "%marsh%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY created_at DESC, id LIMIT \$3 OFFSET \$4`).
			WithArgs(domain.RoleFarmer, "%marsh%", int32(5), int32(5)).
			WillReturnRows(sqlmock.NewRows(profileRows).AddRow(profileRow("p3", domain.RoleFarmer)...))

		repo := postgres.NewProfileRepository(db)
		profiles, total, err := repo.List(context.Background(), "marsh", domain.RoleFarmer, 2, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, profiles, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM profiles WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("P1@Example.Com").
		WillReturnRows(sqlmock.NewRows(profileRows).AddRow(profileRow("p1", domain.RoleLender)...))

	repo := postgres.NewProfileRepository(db)
	p, err := repo.GetByEmail(context.Background(), "P1@Example.Com")
	assert.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Delete(t *testing.T) {
	t.Run("Deletes existing profile", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM profiles WHERE id = \$1`).
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := postgres.NewProfileRepository(db)
		assert.NoError(t, repo.Delete(context.Background(), "p1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown id", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM profiles WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := postgres.NewProfileRepository(db)
		assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_Counts(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM profiles WHERE role = \$1`).
		WithArgs(domain.RoleFarmer).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM profiles WHERE role != 'admin'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	repo := postgres.NewProfileRepository(db)

	farmers, err := repo.CountByRole(context.Background(), domain.RoleFarmer)
	assert.NoError(t, err)
	assert.Equal(t, int32(12), farmers)

	total, err := repo.CountAccounts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(17), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_CreationTimesSince(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := since.AddDate(0, 0, 3)
	second := since.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT created_at FROM profiles WHERE role != 'admin' AND created_at >= \$1 ORDER BY created_at ASC`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(first).AddRow(second))

	repo := postgres.NewProfileRepository(db)
	times, err := repo.CreationTimesSince(context.Background(), since)
	assert.NoError(t, err)
	assert.Equal(t, []time.Time{first, second}, times)
	assert.NoError(t, mock.ExpectationsWereMet())
}
