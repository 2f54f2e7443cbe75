package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
)

const rentalColumns = `id, equipment_id, renter_id, owner_id, start_date, end_date, deliver_at, return_at, COALESCE(message, ''), status, created_at, updated_at`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (id, equipment_id, renter_id, owner_id, start_date, end_date, deliver_at, return_at, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.EquipmentID, rt.RenterID, rt.OwnerID, rt.StartDate, rt.EndDate, rt.DeliverAt, rt.ReturnAt, rt.Message, rt.Status, now, now)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.EquipmentID, &rt.RenterID, &rt.OwnerID, &rt.StartDate, &rt.EndDate, &rt.DeliverAt, &rt.ReturnAt, &rt.Message, &rt.Status, &rt.CreatedAt, &rt.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// TransitionStatus moves a rental out of pending with a single conditional
// update. Two owners racing on the same request cannot both win: the second
// update matches zero rows.
func (r *rentalRepository) TransitionStatus(ctx context.Context, id string, target domain.RentalStatus) (bool, error) {
	query := `UPDATE rentals SET status = $1, updated_at = $2 WHERE id = $3 AND status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, target, time.Now(), id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *rentalRepository) listJoined(ctx context.Context, anchorColumn, counterpartyColumn, anchorID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	page, pageSize = clampPaging(page, pageSize, 10)
	offset := (page - 1) * pageSize

	sqlStr := fmt.Sprintf(`SELECT r.id, r.equipment_id, r.renter_id, r.owner_id, r.start_date, r.end_date, r.deliver_at, r.return_at, COALESCE(r.message, ''), r.status, r.created_at, r.updated_at,
	                 e.name, TRIM(p.first_name || ' ' || p.last_name), p.email, COALESCE(p.address, '')
	          FROM rentals r
	          JOIN equipment e ON e.id = r.equipment_id
	          JOIN profiles p ON p.id = r.%s
	          WHERE r.%s = $1`, counterpartyColumn, anchorColumn)

	args := []interface{}{anchorID}
	argIdx := 2

	if status != "" {
		sqlStr += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if search != "" {
		// Match the full display name so "Olga Marsh" finds the row even
		// though first and last name live in separate columns.
		sqlStr += fmt.Sprintf(" AND (TRIM(p.first_name || ' ' || p.last_name) ILIKE $%d OR p.email ILIKE $%d OR p.address ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var count int32
	countSQL := "SELECT count(*) FROM (" + sqlStr + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY r.created_at DESC, r.id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.RentalListItem
	for rows.Next() {
		var it domain.RentalListItem
		if err := rows.Scan(&it.ID, &it.EquipmentID, &it.RenterID, &it.OwnerID, &it.StartDate, &it.EndDate, &it.DeliverAt, &it.ReturnAt, &it.Message, &it.Status, &it.CreatedAt, &it.UpdatedAt,
			&it.EquipmentName, &it.CounterpartyName, &it.CounterpartyEmail, &it.CounterpartyAddress); err != nil {
			return nil, 0, err
		}
		it.Duration = it.DurationDays()
		items = append(items, it)
	}
	return items, count, rows.Err()
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	return r.listJoined(ctx, "owner_id", "renter_id", ownerID, status, search, page, pageSize)
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	return r.listJoined(ctx, "renter_id", "owner_id", renterID, status, search, page, pageSize)
}

func (r *rentalRepository) CountByOwner(ctx context.Context, ownerID string, status domain.RentalStatus) (int32, error) {
	var count int32
	var err error
	if status == "" {
		err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE owner_id = $1`, ownerID).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE owner_id = $1 AND status = $2`, ownerID, status).Scan(&count)
	}
	return count, err
}

func (r *rentalRepository) CreationTimesSinceByOwner(ctx context.Context, ownerID string, since time.Time) ([]time.Time, error) {
	query := `SELECT created_at FROM rentals WHERE owner_id = $1 AND created_at >= $2 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, ownerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *rentalRepository) PendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.RentalListItem, error) {
	query := `SELECT r.id, r.equipment_id, r.renter_id, r.owner_id, r.start_date, r.end_date, r.deliver_at, r.return_at, COALESCE(r.message, ''), r.status, r.created_at, r.updated_at,
	                 e.name, TRIM(p.first_name || ' ' || p.last_name), p.email, COALESCE(p.address, '')
	          FROM rentals r
	          JOIN equipment e ON e.id = r.equipment_id
	          JOIN profiles p ON p.id = r.renter_id
	          WHERE r.status = 'pending' AND r.created_at < $1
	          ORDER BY r.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalListItem
	for rows.Next() {
		var it domain.RentalListItem
		if err := rows.Scan(&it.ID, &it.EquipmentID, &it.RenterID, &it.OwnerID, &it.StartDate, &it.EndDate, &it.DeliverAt, &it.ReturnAt, &it.Message, &it.Status, &it.CreatedAt, &it.UpdatedAt,
			&it.EquipmentName, &it.CounterpartyName, &it.CounterpartyEmail, &it.CounterpartyAddress); err != nil {
			return nil, err
		}
		it.Duration = it.DurationDays()
		items = append(items, it)
	}
	return items, rows.Err()
}
