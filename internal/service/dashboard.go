package service

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/utils"
)

type dashboardService struct {
	profileRepo   repository.ProfileRepository
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
	reviewRepo    repository.ReviewRepository
	now           func() time.Time
}

func NewDashboardService(
	profileRepo repository.ProfileRepository,
	equipmentRepo repository.EquipmentRepository,
	rentalRepo repository.RentalRepository,
	reviewRepo repository.ReviewRepository,
) DashboardService {
	return &dashboardService{
		profileRepo:   profileRepo,
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
		reviewRepo:    reviewRepo,
		now:           time.Now,
	}
}

func (s *dashboardService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	total, err := s.profileRepo.CountAccounts(ctx)
	if err != nil {
		return nil, domain.StoreErr("account count", err)
	}
	farmers, err := s.profileRepo.CountByRole(ctx, domain.RoleFarmer)
	if err != nil {
		return nil, domain.StoreErr("account count", err)
	}
	lenders, err := s.profileRepo.CountByRole(ctx, domain.RoleLender)
	if err != nil {
		return nil, domain.StoreErr("account count", err)
	}
	return &domain.AdminStats{
		TotalAccounts: total,
		Farmers:       farmers,
		Lenders:       lenders,
	}, nil
}

func (s *dashboardService) LenderStats(ctx context.Context, ownerID string) (*domain.LenderStats, error) {
	equipment, err := s.equipmentRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.StoreErr("equipment count", err)
	}
	total, err := s.rentalRepo.CountByOwner(ctx, ownerID, "")
	if err != nil {
		return nil, domain.StoreErr("rental count", err)
	}
	approved, err := s.rentalRepo.CountByOwner(ctx, ownerID, domain.RentalStatusApproved)
	if err != nil {
		return nil, domain.StoreErr("rental count", err)
	}
	rejected, err := s.rentalRepo.CountByOwner(ctx, ownerID, domain.RentalStatusRejected)
	if err != nil {
		return nil, domain.StoreErr("rental count", err)
	}
	return &domain.LenderStats{
		TotalEquipment: equipment,
		TotalRentals:   total,
		Approved:       approved,
		Rejected:       rejected,
	}, nil
}

// BucketizeMonthly counts created timestamps per trailing calendar month,
// oldest first. Months with no activity stay present with a zero count.
func BucketizeMonthly(times []time.Time, now time.Time, months int) []domain.MonthlyCount {
	keys := utils.LastMonths(now, months)
	counts := make(map[utils.MonthKey]int32, len(keys))
	for _, t := range times {
		counts[utils.MonthKey{Year: t.Year(), Month: t.Month()}]++
	}
	out := make([]domain.MonthlyCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.MonthlyCount{Month: k.Label(), Count: counts[k]})
	}
	return out
}

func (s *dashboardService) UserGrowth(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	if months <= 0 {
		months = 3
	}
	now := s.now()
	times, err := s.profileRepo.CreationTimesSince(ctx, utils.StartOfMonthsAgo(now, months))
	if err != nil {
		return nil, domain.StoreErr("signup history", err)
	}
	return BucketizeMonthly(times, now, months), nil
}

func (s *dashboardService) RentalGrowth(ctx context.Context, ownerID string, months int) ([]domain.MonthlyCount, error) {
	if months <= 0 {
		months = 3
	}
	now := s.now()
	times, err := s.rentalRepo.CreationTimesSinceByOwner(ctx, ownerID, utils.StartOfMonthsAgo(now, months))
	if err != nil {
		return nil, domain.StoreErr("rental history", err)
	}
	return BucketizeMonthly(times, now, months), nil
}

func (s *dashboardService) ListUsers(ctx context.Context, search string, role domain.Role, page, pageSize int32) ([]domain.Profile, int32, error) {
	if role != "" && !role.Valid() {
		return nil, 0, domain.Validationf("unknown role %q", role)
	}
	profiles, total, err := s.profileRepo.List(ctx, search, role, page, pageSize)
	return profiles, total, domain.StoreErr("account list", err)
}

func (s *dashboardService) PopularEquipment(ctx context.Context, limit int32) ([]PopularListing, error) {
	if limit <= 0 {
		limit = 4
	}
	top, err := s.equipmentRepo.TopByRentalCount(ctx, limit)
	if err != nil {
		return nil, domain.StoreErr("equipment list", err)
	}
	out := make([]PopularListing, 0, len(top))
	for _, eq := range top {
		reviews, err := s.reviewRepo.AllByEquipment(ctx, eq.ID)
		if err != nil {
			return nil, domain.StoreErr("review load", err)
		}
		agg := ComputeAggregate(reviews)
		out = append(out, PopularListing{
			Equipment:     eq,
			AverageRating: agg.AverageRating,
			TotalReviews:  agg.TotalReviews,
		})
	}
	return out, nil
}
