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

var equipmentRows = []string{
	"id", "owner_id", "name", "model", "type_id", "rate", "description",
	"delivery", "location", "image_url", "rental_count", "added_at", "updated_at",
}

func equipmentRow(id, name string, rate int64, rentalCount int32) []driver.Value {
	now := time.Now()
	return []driver.Value{id, "lender-1", name, "M1", "type-1", rate, "", "pickup", "Fresno", "", rentalCount, now, now}
}

func TestEquipmentRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Price sort with location filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ FROM equipment WHERE 1=1 AND location ILIKE \$1\) AS sub`).
			WithArgs("%Fresno%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE 1=1 AND location ILIKE \$1 ORDER BY rate ASC, id LIMIT \$2 OFFSET \$3`).
			WithArgs("%Fresno%", int32(4), int32(0)).
			WillReturnRows(sqlmock.NewRows(equipmentRows).
				AddRow(equipmentRow("eq-1", "Tiller", 100, 2)...).
				AddRow(equipmentRow("eq-2", "Baler", 200, 5)...))

		items, total, err := repo.List(ctx, domain.EquipmentFilter{
			Location: "Fresno",
			Sort:     domain.SortPrice,
			Page:     1,
			Limit:    4,
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Len(t, items, 2)
		assert.Equal(t, "Tiller", items[0].Name)
	})

	t.Run("Popularity sort puts nulls last", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ FROM equipment WHERE 1=1\) AS sub`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE 1=1 ORDER BY rental_count DESC NULLS LAST, id LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(4), int32(0)).
			WillReturnRows(sqlmock.NewRows(equipmentRows).
				AddRow(equipmentRow("eq-1", "Harvester", 500, 9)...))

		items, total, err := repo.List(ctx, domain.EquipmentFilter{Sort: domain.SortPopularity, Page: 1, Limit: 4})
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, items, 1)
	})

	t.Run("Bad paging is clamped", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ FROM equipment WHERE 1=1\) AS sub`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		// page and limit fall back to 1 and 4
		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE 1=1 ORDER BY .+ LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(4), int32(0)).
			WillReturnRows(sqlmock.NewRows(equipmentRows))

		_, _, err := repo.List(ctx, domain.EquipmentFilter{Page: -3, Limit: 0})
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_IncrementRentalCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)

	mock.ExpectExec(`UPDATE equipment SET rental_count = COALESCE\(rental_count, 0\) \+ 1 WHERE id = \$1`).
		WithArgs("eq-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.IncrementRentalCount(context.Background(), "eq-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_GetType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, created_at FROM equipment_types WHERE id = \$1`).
			WithArgs("type-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
				AddRow("type-1", "Tillage", time.Now()))

		typ, err := repo.GetType(ctx, "type-1")
		assert.NoError(t, err)
		assert.Equal(t, "Tillage", typ.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, created_at FROM equipment_types WHERE id = \$1`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

		typ, err := repo.GetType(ctx, "nope")
		assert.Nil(t, typ)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
