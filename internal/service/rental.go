package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	profileRepo   repository.ProfileRepository
	emailSvc      EmailService
	log           *slog.Logger
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	profileRepo repository.ProfileRepository,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		profileRepo:   profileRepo,
		emailSvc:      emailSvc,
		log:           logger.WithService("rental"),
	}
}

func (s *rentalService) SubmitRentalRequest(ctx context.Context, renterID string, in RentalRequestInput) (*domain.Rental, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, domain.Validationf("missing dates")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, domain.Validationf("invalid rental duration")
	}

	eq, err := s.equipmentRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, domain.StoreErr("equipment lookup", err)
	}
	if eq.OwnerID == "" {
		return nil, domain.Validationf("owner information missing")
	}
	if eq.OwnerID == renterID {
		return nil, domain.Validationf("you cannot rent your own equipment")
	}

	rental := &domain.Rental{
		ID:          uuid.NewString(),
		EquipmentID: eq.ID,
		RenterID:    renterID,
		OwnerID:     eq.OwnerID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		DeliverAt:   in.DeliverAt,
		ReturnAt:    in.ReturnAt,
		Message:     in.Message,
		Status:      domain.RentalStatusPending,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, domain.StoreErr("rental insert", err)
	}

	// Notify the owner. The request stands whether or not the email goes
	// out.
	owner, _ := s.profileRepo.GetByID(ctx, eq.OwnerID)
	renter, _ := s.profileRepo.GetByID(ctx, renterID)
	if owner != nil && renter != nil {
		if err := s.emailSvc.SendRentalRequestNotification(ctx, owner.Email, owner.DisplayName(), renter.DisplayName(), eq.Name); err != nil {
			s.log.Warn("rental request email failed", "rental_id", rental.ID, "error", err)
		}
	}
	return rental, nil
}

func (s *rentalService) TransitionRental(ctx context.Context, callerID, rentalID string, target domain.RentalStatus) (*domain.Rental, error) {
	if target != domain.RentalStatusApproved && target != domain.RentalStatusRejected {
		return nil, domain.Validationf("unknown rental decision %q", target)
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, domain.StoreErr("rental lookup", err)
	}
	if rental.OwnerID != callerID {
		return nil, domain.ErrUnauthorized
	}

	moved, err := s.rentalRepo.TransitionStatus(ctx, rentalID, target)
	if err != nil {
		return nil, domain.StoreErr("rental status update", err)
	}
	if !moved {
		// Lost the race or the rental was already decided.
		return nil, domain.ErrInvalidTransition
	}
	rental.Status = target

	if target == domain.RentalStatusApproved {
		if err := s.equipmentRepo.IncrementRentalCount(ctx, rental.EquipmentID); err != nil {
			s.log.Error("rental count increment failed", "equipment_id", rental.EquipmentID, "error", err)
		}
	}

	eq, _ := s.equipmentRepo.GetByID(ctx, rental.EquipmentID)
	owner, _ := s.profileRepo.GetByID(ctx, rental.OwnerID)
	renter, _ := s.profileRepo.GetByID(ctx, rental.RenterID)
	if eq != nil && owner != nil && renter != nil {
		var emailErr error
		if target == domain.RentalStatusApproved {
			emailErr = s.emailSvc.SendRentalApprovalNotification(ctx, renter.Email, renter.DisplayName(), eq.Name, owner.DisplayName())
		} else {
			emailErr = s.emailSvc.SendRentalRejectionNotification(ctx, renter.Email, renter.DisplayName(), eq.Name, owner.DisplayName())
		}
		if emailErr != nil {
			s.log.Warn("rental decision email failed", "rental_id", rental.ID, "error", emailErr)
		}
	}
	return rental, nil
}

func (s *rentalService) ListRentalsForOwner(ctx context.Context, ownerID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.Validationf("unknown rental status %q", status)
	}
	items, total, err := s.rentalRepo.ListByOwner(ctx, ownerID, status, search, page, pageSize)
	return items, total, domain.StoreErr("rental list", err)
}

func (s *rentalService) ListRentalsForRenter(ctx context.Context, renterID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.Validationf("unknown rental status %q", status)
	}
	items, total, err := s.rentalRepo.ListByRenter(ctx, renterID, status, search, page, pageSize)
	return items, total, domain.StoreErr("rental list", err)
}

func (s *rentalService) GetRental(ctx context.Context, callerID, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, domain.StoreErr("rental lookup", err)
	}
	if rental.OwnerID != callerID && rental.RenterID != callerID {
		return nil, domain.ErrUnauthorized
	}
	return rental, nil
}
