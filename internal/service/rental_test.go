package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/service"
)

func newRentalFixture() (*MockRentalRepo, *MockEquipmentRepo, *MockProfileRepo, *MockEmailService, service.RentalService) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	profileRepo := new(MockProfileRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewRentalService(rentalRepo, equipmentRepo, profileRepo, emailSvc)
	return rentalRepo, equipmentRepo, profileRepo, emailSvc, svc
}

func TestRentalService_SubmitRentalRequest(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	equipment := &domain.Equipment{ID: "eq-1", OwnerID: "lender-1", Name: "Combine Harvester"}
	owner := &domain.Profile{ID: "lender-1", FirstName: "Olga", LastName: "Marsh", Email: "olga@example.com"}
	renter := &domain.Profile{ID: "farmer-1", FirstName: "Ray", LastName: "Field", Email: "ray@example.com"}

	t.Run("Success", func(t *testing.T) {
		rentalRepo, equipmentRepo, profileRepo, emailSvc, svc := newRentalFixture()

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(equipment, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		profileRepo.On("GetByID", ctx, "lender-1").Return(owner, nil)
		profileRepo.On("GetByID", ctx, "farmer-1").Return(renter, nil)
		emailSvc.On("SendRentalRequestNotification", ctx, "olga@example.com", "Olga Marsh", "Ray Field", "Combine Harvester").Return(nil)

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   start,
			EndDate:     end,
		})
		assert.NoError(t, err)
		assert.NotNil(t, rental)
		assert.Equal(t, domain.RentalStatusPending, rental.Status)
		assert.Equal(t, "lender-1", rental.OwnerID)
		assert.Equal(t, int32(3), rental.DurationDays())
		emailSvc.AssertExpectations(t)
	})

	t.Run("Same-day window with hours is valid", func(t *testing.T) {
		rentalRepo, equipmentRepo, profileRepo, emailSvc, svc := newRentalFixture()

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(equipment, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		profileRepo.On("GetByID", ctx, "lender-1").Return(owner, nil)
		profileRepo.On("GetByID", ctx, "farmer-1").Return(renter, nil)
		emailSvc.On("SendRentalRequestNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC),
		})
		assert.NoError(t, err)
		assert.NotNil(t, rental)
		assert.Equal(t, int32(1), rental.DurationDays())
	})

	t.Run("Store failure reads as an upstream fault", func(t *testing.T) {
		_, equipmentRepo, _, _, svc := newRentalFixture()

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(nil, assert.AnError)

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   start,
			EndDate:     end,
		})
		assert.Nil(t, rental)
		assert.True(t, domain.IsUpstream(err))
	})

	t.Run("Missing equipment stays a not-found", func(t *testing.T) {
		_, equipmentRepo, _, _, svc := newRentalFixture()

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(nil, domain.ErrNotFound)

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   start,
			EndDate:     end,
		})
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, domain.IsUpstream(err))
	})

	t.Run("Missing dates", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{EquipmentID: "eq-1"})
		assert.Nil(t, rental)
		assert.True(t, domain.IsValidation(err))
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("End before start", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   end,
			EndDate:     start,
		})
		assert.Nil(t, rental)
		assert.True(t, domain.IsValidation(err))
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("End equals start", func(t *testing.T) {
		_, _, _, _, svc := newRentalFixture()

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   start,
			EndDate:     start,
		})
		assert.Nil(t, rental)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Renting own equipment", func(t *testing.T) {
		_, equipmentRepo, _, _, svc := newRentalFixture()

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(equipment, nil)

		rental, err := svc.SubmitRentalRequest(ctx, "lender-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   start,
			EndDate:     end,
		})
		assert.Nil(t, rental)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Email failure does not fail the request", func(t *testing.T) {
		rentalRepo, equipmentRepo, profileRepo, emailSvc, svc := newRentalFixture()

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(equipment, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		profileRepo.On("GetByID", ctx, "lender-1").Return(owner, nil)
		profileRepo.On("GetByID", ctx, "farmer-1").Return(renter, nil)
		emailSvc.On("SendRentalRequestNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		rental, err := svc.SubmitRentalRequest(ctx, "farmer-1", service.RentalRequestInput{
			EquipmentID: "eq-1",
			StartDate:   start,
			EndDate:     end,
		})
		assert.NoError(t, err)
		assert.NotNil(t, rental)
	})
}

func TestRentalService_TransitionRental(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Rental {
		return &domain.Rental{
			ID:          "rental-1",
			EquipmentID: "eq-1",
			RenterID:    "farmer-1",
			OwnerID:     "lender-1",
			Status:      domain.RentalStatusPending,
		}
	}
	equipment := &domain.Equipment{ID: "eq-1", OwnerID: "lender-1", Name: "Seeder"}
	owner := &domain.Profile{ID: "lender-1", FirstName: "Olga", Email: "olga@example.com"}
	renter := &domain.Profile{ID: "farmer-1", FirstName: "Ray", Email: "ray@example.com"}

	t.Run("Approve increments rental count", func(t *testing.T) {
		rentalRepo, equipmentRepo, profileRepo, emailSvc, svc := newRentalFixture()

		rentalRepo.On("GetByID", ctx, "rental-1").Return(pending(), nil)
		rentalRepo.On("TransitionStatus", ctx, "rental-1", domain.RentalStatusApproved).Return(true, nil)
		equipmentRepo.On("IncrementRentalCount", ctx, "eq-1").Return(nil)
		equipmentRepo.On("GetByID", ctx, "eq-1").Return(equipment, nil)
		profileRepo.On("GetByID", ctx, "lender-1").Return(owner, nil)
		profileRepo.On("GetByID", ctx, "farmer-1").Return(renter, nil)
		emailSvc.On("SendRentalApprovalNotification", ctx, "ray@example.com", "Ray", "Seeder", "Olga").Return(nil)

		rental, err := svc.TransitionRental(ctx, "lender-1", "rental-1", domain.RentalStatusApproved)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusApproved, rental.Status)
		equipmentRepo.AssertCalled(t, "IncrementRentalCount", ctx, "eq-1")
	})

	t.Run("Reject does not touch rental count", func(t *testing.T) {
		rentalRepo, equipmentRepo, profileRepo, emailSvc, svc := newRentalFixture()

		rentalRepo.On("GetByID", ctx, "rental-1").Return(pending(), nil)
		rentalRepo.On("TransitionStatus", ctx, "rental-1", domain.RentalStatusRejected).Return(true, nil)
		equipmentRepo.On("GetByID", ctx, "eq-1").Return(equipment, nil)
		profileRepo.On("GetByID", ctx, "lender-1").Return(owner, nil)
		profileRepo.On("GetByID", ctx, "farmer-1").Return(renter, nil)
		emailSvc.On("SendRentalRejectionNotification", ctx, "ray@example.com", "Ray", "Seeder", "Olga").Return(nil)

		rental, err := svc.TransitionRental(ctx, "lender-1", "rental-1", domain.RentalStatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusRejected, rental.Status)
		equipmentRepo.AssertNotCalled(t, "IncrementRentalCount", mock.Anything, mock.Anything)
	})

	t.Run("Only the owner may decide", func(t *testing.T) {
		rentalRepo, _, _, _, svc := newRentalFixture()

		rentalRepo.On("GetByID", ctx, "rental-1").Return(pending(), nil)

		rental, err := svc.TransitionRental(ctx, "farmer-1", "rental-1", domain.RentalStatusApproved)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		rentalRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already decided", func(t *testing.T) {
		rentalRepo, equipmentRepo, _, _, svc := newRentalFixture()

		rentalRepo.On("GetByID", ctx, "rental-1").Return(pending(), nil)
		rentalRepo.On("TransitionStatus", ctx, "rental-1", domain.RentalStatusApproved).Return(false, nil)

		rental, err := svc.TransitionRental(ctx, "lender-1", "rental-1", domain.RentalStatusApproved)
		assert.Nil(t, rental)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		equipmentRepo.AssertNotCalled(t, "IncrementRentalCount", mock.Anything, mock.Anything)
	})

	t.Run("Pending is not a decision", func(t *testing.T) {
		_, _, _, _, svc := newRentalFixture()

		rental, err := svc.TransitionRental(ctx, "lender-1", "rental-1", domain.RentalStatusPending)
		assert.Nil(t, rental)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestRentalService_GetRental(t *testing.T) {
	ctx := context.Background()
	rental := &domain.Rental{ID: "rental-1", RenterID: "farmer-1", OwnerID: "lender-1"}

	rentalRepo, _, _, _, svc := newRentalFixture()
	rentalRepo.On("GetByID", ctx, "rental-1").Return(rental, nil)

	t.Run("Renter can read", func(t *testing.T) {
		got, err := svc.GetRental(ctx, "farmer-1", "rental-1")
		assert.NoError(t, err)
		assert.Equal(t, rental, got)
	})

	t.Run("Owner can read", func(t *testing.T) {
		got, err := svc.GetRental(ctx, "lender-1", "rental-1")
		assert.NoError(t, err)
		assert.Equal(t, rental, got)
	})

	t.Run("Stranger cannot read", func(t *testing.T) {
		got, err := svc.GetRental(ctx, "other", "rental-1")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
