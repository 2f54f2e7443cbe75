package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
)

type inquiryRepository struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) repository.InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, in *domain.Inquiry) error {
	query := `INSERT INTO inquiries (id, first_name, last_name, email, message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, in.ID, in.FirstName, in.LastName, in.Email, in.Message, time.Now())
	return err
}

func (r *inquiryRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Inquiry, int32, error) {
	page, pageSize = clampPaging(page, pageSize, 10)
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM inquiries`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, first_name, last_name, email, message, created_at
	          FROM inquiries ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Inquiry
	for rows.Next() {
		var in domain.Inquiry
		if err := rows.Scan(&in.ID, &in.FirstName, &in.LastName, &in.Email, &in.Message, &in.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, in)
	}
	return items, count, rows.Err()
}
