package service

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/storage"
)

type catalogService struct {
	equipmentRepo repository.EquipmentRepository
	profileRepo   repository.ProfileRepository
	reviewRepo    repository.ReviewRepository
	storage       storage.StorageInterface
	log           *slog.Logger
}

func NewCatalogService(
	equipmentRepo repository.EquipmentRepository,
	profileRepo repository.ProfileRepository,
	reviewRepo repository.ReviewRepository,
	store storage.StorageInterface,
) CatalogService {
	return &catalogService{
		equipmentRepo: equipmentRepo,
		profileRepo:   profileRepo,
		reviewRepo:    reviewRepo,
		storage:       store,
		log:           logger.WithService("catalog"),
	}
}

func (s *catalogService) ListEquipment(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, int32, error) {
	if f.Sort == "" {
		f.Sort = domain.SortPopularity
	}
	switch f.Sort {
	case domain.SortPrice, domain.SortNewest, domain.SortPopularity:
	default:
		return nil, 0, domain.Validationf("unknown sort order %q", f.Sort)
	}
	items, total, err := s.equipmentRepo.List(ctx, f)
	return items, total, domain.StoreErr("equipment list", err)
}

func (s *catalogService) GetEquipmentDetail(ctx context.Context, id string) (*domain.EquipmentDetail, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreErr("equipment lookup", err)
	}

	detail := &domain.EquipmentDetail{Equipment: *eq}

	owner, err := s.profileRepo.GetByID(ctx, eq.OwnerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, domain.StoreErr("owner lookup", err)
	}
	if owner != nil {
		detail.OwnerFirstName = owner.FirstName
		detail.OwnerLastName = owner.LastName
	}

	reviews, err := s.reviewRepo.AllByEquipment(ctx, id)
	if err != nil {
		return nil, domain.StoreErr("review load", err)
	}
	agg := ComputeAggregate(reviews)
	detail.Reviews = reviews
	detail.AverageRating = agg.AverageRating
	detail.TotalReviews = agg.TotalReviews
	return detail, nil
}

func (s *catalogService) CreateEquipment(ctx context.Context, ownerID string, in EquipmentInput, image *ImageUpload) (*domain.Equipment, error) {
	if err := validateEquipmentInput(in); err != nil {
		return nil, err
	}

	owner, err := s.profileRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, domain.StoreErr("profile lookup", err)
	}
	if owner.Role != domain.RoleLender {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.equipmentRepo.GetType(ctx, in.TypeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validationf("unknown equipment type")
		}
		return nil, domain.StoreErr("equipment type lookup", err)
	}

	var imageURL, imageKey string
	if image != nil {
		imageKey = objectKey("equipment", image.FileName)
		imageURL, err = s.storage.Upload(ctx, imageKey, image.ContentType, image.Content)
		if err != nil {
			return nil, domain.StoreErr("image upload", err)
		}
	}

	eq := &domain.Equipment{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Model:       strings.TrimSpace(in.Model),
		TypeID:      in.TypeID,
		Rate:        in.Rate,
		Description: in.Description,
		Delivery:    in.Delivery,
		Location:    strings.TrimSpace(in.Location),
		ImageURL:    imageURL,
	}
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		// The insert failed after the image landed in storage. Remove the
		// orphan so the cleanup job has less to chase.
		if imageKey != "" {
			if delErr := s.storage.Delete(ctx, imageKey); delErr != nil {
				s.log.Warn("orphan image cleanup failed", "key", imageKey, "error", delErr)
			}
		}
		return nil, domain.StoreErr("equipment insert", err)
	}
	return eq, nil
}

func (s *catalogService) UpdateEquipment(ctx context.Context, callerID, equipmentID string, patch EquipmentPatch, image *ImageUpload) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, domain.StoreErr("equipment lookup", err)
	}
	if eq.OwnerID != callerID {
		return nil, domain.ErrUnauthorized
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, domain.Validationf("equipment name is required")
		}
		eq.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Model != nil {
		eq.Model = strings.TrimSpace(*patch.Model)
	}
	if patch.TypeID != nil {
		if _, err := s.equipmentRepo.GetType(ctx, *patch.TypeID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Validationf("unknown equipment type")
			}
			return nil, domain.StoreErr("equipment type lookup", err)
		}
		eq.TypeID = *patch.TypeID
	}
	if patch.Rate != nil {
		if *patch.Rate < 0 {
			return nil, domain.Validationf("rate must not be negative")
		}
		eq.Rate = *patch.Rate
	}
	if patch.Description != nil {
		eq.Description = *patch.Description
	}
	if patch.Delivery != nil {
		if !patch.Delivery.Valid() {
			return nil, domain.Validationf("unknown delivery mode %q", *patch.Delivery)
		}
		eq.Delivery = *patch.Delivery
	}
	if patch.Location != nil {
		eq.Location = strings.TrimSpace(*patch.Location)
	}

	oldImageURL := eq.ImageURL
	var imageKey string
	if image != nil {
		imageKey = objectKey("equipment", image.FileName)
		url, err := s.storage.Upload(ctx, imageKey, image.ContentType, image.Content)
		if err != nil {
			return nil, domain.StoreErr("image upload", err)
		}
		eq.ImageURL = url
	}

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		if imageKey != "" {
			if delErr := s.storage.Delete(ctx, imageKey); delErr != nil {
				s.log.Warn("orphan image cleanup failed", "key", imageKey, "error", delErr)
			}
		}
		return nil, domain.StoreErr("equipment update", err)
	}

	// The replaced image is gone from every row now; drop the object.
	if imageKey != "" && oldImageURL != "" && oldImageURL != eq.ImageURL {
		if key := s.storage.KeyFromURL(oldImageURL); key != "" {
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				s.log.Warn("stale image cleanup failed", "key", key, "error", delErr)
			}
		}
	}
	return eq, nil
}

func (s *catalogService) ListEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	types, err := s.equipmentRepo.ListTypes(ctx)
	return types, domain.StoreErr("equipment type list", err)
}

func validateEquipmentInput(in EquipmentInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validationf("equipment name is required")
	}
	if strings.TrimSpace(in.Model) == "" {
		return domain.Validationf("equipment model is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return domain.Validationf("location is required")
	}
	if in.TypeID == "" {
		return domain.Validationf("equipment type is required")
	}
	if in.Rate < 0 {
		return domain.Validationf("rate must not be negative")
	}
	if !in.Delivery.Valid() {
		return domain.Validationf("unknown delivery mode %q", in.Delivery)
	}
	return nil
}

// objectKey builds a collision-free storage key, keeping the original file
// extension.
func objectKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return prefix + "/" + uuid.NewString() + ext
}
