package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/utils"
)

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	equipmentRepo repository.EquipmentRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, equipmentRepo repository.EquipmentRepository) ReviewService {
	return &reviewService{
		reviewRepo:    reviewRepo,
		equipmentRepo: equipmentRepo,
	}
}

// ComputeAggregate derives the rating summary from raw review rows. The
// average is rounded to one decimal, half away from zero; an equipment with
// no reviews aggregates to 0.0 over 0.
func ComputeAggregate(reviews []domain.Review) domain.ReviewAggregate {
	if len(reviews) == 0 {
		return domain.ReviewAggregate{}
	}
	var sum int64
	for _, rv := range reviews {
		sum += int64(rv.RatingCount)
	}
	return domain.ReviewAggregate{
		AverageRating: utils.Round1(float64(sum) / float64(len(reviews))),
		TotalReviews:  int32(len(reviews)),
	}
}

func (s *reviewService) ListReviews(ctx context.Context, equipmentID string, page, pageSize int32) ([]domain.Review, int32, error) {
	reviews, total, err := s.reviewRepo.ListByEquipment(ctx, equipmentID, page, pageSize)
	return reviews, total, domain.StoreErr("review list", err)
}

func (s *reviewService) PostReview(ctx context.Context, authorID, equipmentID string, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, domain.Validationf("review comment is required")
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, domain.StoreErr("equipment lookup", err)
	}
	if eq.OwnerID == authorID {
		return nil, domain.Validationf("you cannot review your own equipment")
	}

	exists, err := s.reviewRepo.ExistsByAuthor(ctx, equipmentID, authorID)
	if err != nil {
		return nil, domain.StoreErr("review lookup", err)
	}
	if exists {
		return nil, domain.Validationf("you have already reviewed this equipment")
	}

	rv := &domain.Review{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		UserID:      authorID,
		RatingCount: rating,
		Comment:     strings.TrimSpace(comment),
	}
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, domain.StoreErr("review insert", err)
	}
	return rv, nil
}

func (s *reviewService) Aggregate(ctx context.Context, equipmentID string) (*domain.ReviewAggregate, error) {
	reviews, err := s.reviewRepo.AllByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, domain.StoreErr("review load", err)
	}
	agg := ComputeAggregate(reviews)
	return &agg, nil
}

func (s *reviewService) RecentReviews(ctx context.Context, limit int32) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 3
	}
	reviews, err := s.reviewRepo.Recent(ctx, limit)
	return reviews, domain.StoreErr("review list", err)
}
