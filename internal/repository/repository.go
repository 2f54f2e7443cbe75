package repository

import (
	"context"
	"time"

	"agrorent-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) error

	// List returns non-admin profiles matching the optional search and role
	// filter, newest first. Search matches name, email and address.
	List(ctx context.Context, search string, role domain.Role, page, pageSize int32) ([]domain.Profile, int32, error)
	CountByRole(ctx context.Context, role domain.Role) (int32, error)
	// CountAccounts counts all non-admin profiles.
	CountAccounts(ctx context.Context) (int32, error)
	// CreationTimesSince returns creation timestamps of non-admin profiles
	// created at or after since, ascending.
	CreationTimesSince(ctx context.Context, since time.Time) ([]time.Time, error)
	// AvatarURLs returns every non-empty avatar reference.
	AvatarURLs(ctx context.Context) ([]string, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, int32, error)
	// IncrementRentalCount bumps rental_count atomically at the store level.
	IncrementRentalCount(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int32, error)
	TopByRentalCount(ctx context.Context, limit int32) ([]domain.Equipment, error)
	// ImageURLs returns every non-empty image reference.
	ImageURLs(ctx context.Context) ([]string, error)

	ListTypes(ctx context.Context) ([]domain.EquipmentType, error)
	GetType(ctx context.Context, id string) (*domain.EquipmentType, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	// ListByEquipment returns reviews newest first with the catalog
	// pagination contract.
	ListByEquipment(ctx context.Context, equipmentID string, page, pageSize int32) ([]domain.Review, int32, error)
	// AllByEquipment returns every review row for aggregate computation.
	AllByEquipment(ctx context.Context, equipmentID string) ([]domain.Review, error)
	ExistsByAuthor(ctx context.Context, equipmentID, userID string) (bool, error)
	// Recent returns the latest commented reviews joined with their authors.
	Recent(ctx context.Context, limit int32) ([]domain.Review, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	// TransitionStatus issues a conditional update: the row moves to target
	// only if its current status is still pending. Returns false when no row
	// changed, which means the rental was already decided (or is missing).
	TransitionStatus(ctx context.Context, id string, target domain.RentalStatus) (bool, error)
	ListByOwner(ctx context.Context, ownerID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error)
	ListByRenter(ctx context.Context, renterID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error)
	// CountByOwner counts an owner's rentals, optionally narrowed to one
	// status (empty status counts all).
	CountByOwner(ctx context.Context, ownerID string, status domain.RentalStatus) (int32, error)
	CreationTimesSinceByOwner(ctx context.Context, ownerID string, since time.Time) ([]time.Time, error)
	// PendingOlderThan returns pending requests created before cutoff,
	// joined with equipment and renter fields for reminder emails.
	PendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.RentalListItem, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, in *domain.Inquiry) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Inquiry, int32, error)
}
