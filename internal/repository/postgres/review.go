package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (id, equipment_id, user_id, rating_count, comment, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.EquipmentID, rv.UserID, rv.RatingCount, rv.Comment, time.Now())
	return err
}

func (r *reviewRepository) ListByEquipment(ctx context.Context, equipmentID string, page, pageSize int32) ([]domain.Review, int32, error) {
	page, pageSize = clampPaging(page, pageSize, 4)
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE equipment_id = $1`, equipmentID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, equipment_id, user_id, rating_count, COALESCE(comment, ''), created_at
	          FROM reviews WHERE equipment_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, equipmentID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.EquipmentID, &rv.UserID, &rv.RatingCount, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}

func (r *reviewRepository) AllByEquipment(ctx context.Context, equipmentID string) ([]domain.Review, error) {
	query := `SELECT id, equipment_id, user_id, rating_count, COALESCE(comment, ''), created_at
	          FROM reviews WHERE equipment_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.EquipmentID, &rv.UserID, &rv.RatingCount, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) ExistsByAuthor(ctx context.Context, equipmentID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE equipment_id = $1 AND user_id = $2)`, equipmentID, userID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) Recent(ctx context.Context, limit int32) ([]domain.Review, error) {
	if limit < 1 {
		limit = 3
	}
	query := `SELECT r.id, r.equipment_id, r.user_id, r.rating_count, COALESCE(r.comment, ''), r.created_at,
	                 p.first_name, p.last_name, p.address, COALESCE(p.avatar_url, '')
	          FROM reviews r
	          JOIN profiles p ON p.id = r.user_id
	          WHERE r.comment IS NOT NULL AND r.comment != ''
	          ORDER BY r.created_at DESC, r.id LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		author := &domain.Profile{}
		if err := rows.Scan(&rv.ID, &rv.EquipmentID, &rv.UserID, &rv.RatingCount, &rv.Comment, &rv.CreatedAt,
			&author.FirstName, &author.LastName, &author.Address, &author.AvatarURL); err != nil {
			return nil, err
		}
		author.ID = rv.UserID
		rv.Author = author
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
