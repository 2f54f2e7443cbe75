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

const profileColumns = `id, username, first_name, last_name, email, role, address, contact_number, COALESCE(avatar_url, ''), subscription, COALESCE(password_hash, ''), created_at, updated_at`

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.Username, &p.FirstName, &p.LastName, &p.Email, &p.Role, &p.Address, &p.ContactNumber, &p.AvatarURL, &p.Subscription, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, username, first_name, last_name, email, role, address, contact_number, avatar_url, subscription, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Username, p.FirstName, p.LastName, p.Email, p.Role, p.Address, p.ContactNumber, p.AvatarURL, p.Subscription, p.PasswordHash, now, now)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET username=$1, first_name=$2, last_name=$3, email=$4, address=$5, contact_number=$6, avatar_url=$7, subscription=$8, updated_at=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, p.Username, p.FirstName, p.LastName, p.Email, p.Address, p.ContactNumber, p.AvatarURL, p.Subscription, time.Now(), p.ID)
	return err
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, search string, role domain.Role, page, pageSize int32) ([]domain.Profile, int32, error) {
	page, pageSize = clampPaging(page, pageSize, 10)
	offset := (page - 1) * pageSize

	sqlStr := `SELECT ` + profileColumns + ` FROM profiles WHERE role != 'admin'`
	args := []interface{}{}
	argIdx := 1

	if role != "" {
		sqlStr += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, role)
		argIdx++
	}
	if search != "" {
		sqlStr += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR address ILIKE $%d)", argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var count int32
	countSQL := "SELECT count(*) FROM (" + sqlStr + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, count, rows.Err()
}

func (r *profileRepository) CountByRole(ctx context.Context, role domain.Role) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM profiles WHERE role = $1`, role).Scan(&count)
	return count, err
}

func (r *profileRepository) CountAccounts(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM profiles WHERE role != 'admin'`).Scan(&count)
	return count, err
}

func (r *profileRepository) CreationTimesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	query := `SELECT created_at FROM profiles WHERE role != 'admin' AND created_at >= $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, since)
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

func (r *profileRepository) AvatarURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT avatar_url FROM profiles WHERE avatar_url IS NOT NULL AND avatar_url != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
