package service

import (
	"context"
	"io"
	"time"

	"agrorent-backend/internal/domain"
)

// EquipmentInput is the payload for a new listing.
type EquipmentInput struct {
	Name        string
	Model       string
	TypeID      string
	Rate        int64
	Description string
	Delivery    domain.DeliveryMode
	Location    string
}

// EquipmentPatch is a partial listing update. Nil fields are left unchanged.
type EquipmentPatch struct {
	Name        *string
	Model       *string
	TypeID      *string
	Rate        *int64
	Description *string
	Delivery    *domain.DeliveryMode
	Location    *string
}

// ImageUpload is an image blob received from a multipart form.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type RentalRequestInput struct {
	EquipmentID string
	StartDate   time.Time
	EndDate     time.Time
	DeliverAt   string
	ReturnAt    string
	Message     string
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
// Role, email and subscription are not updatable through it.
type ProfilePatch struct {
	Username      *string
	FirstName     *string
	LastName      *string
	Address       *string
	ContactNumber *string
}

type InquiryInput struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// PopularListing is an equipment row joined with its review aggregate, as
// shown on the landing page.
type PopularListing struct {
	domain.Equipment
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int32   `json:"total_reviews"`
}

type CatalogService interface {
	ListEquipment(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, int32, error)
	GetEquipmentDetail(ctx context.Context, id string) (*domain.EquipmentDetail, error)
	CreateEquipment(ctx context.Context, ownerID string, in EquipmentInput, image *ImageUpload) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, callerID, equipmentID string, patch EquipmentPatch, image *ImageUpload) (*domain.Equipment, error)
	ListEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error)
}

type ReviewService interface {
	ListReviews(ctx context.Context, equipmentID string, page, pageSize int32) ([]domain.Review, int32, error)
	PostReview(ctx context.Context, authorID, equipmentID string, rating int32, comment string) (*domain.Review, error)
	Aggregate(ctx context.Context, equipmentID string) (*domain.ReviewAggregate, error)
	RecentReviews(ctx context.Context, limit int32) ([]domain.Review, error)
}

type RentalService interface {
	SubmitRentalRequest(ctx context.Context, renterID string, in RentalRequestInput) (*domain.Rental, error)
	// TransitionRental moves a pending rental to approved or rejected. Only
	// the equipment owner may decide; a rental that is already decided
	// yields domain.ErrInvalidTransition.
	TransitionRental(ctx context.Context, callerID, rentalID string, target domain.RentalStatus) (*domain.Rental, error)
	ListRentalsForOwner(ctx context.Context, ownerID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error)
	ListRentalsForRenter(ctx context.Context, renterID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error)
	GetRental(ctx context.Context, callerID, rentalID string) (*domain.Rental, error)
}

type DashboardService interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	LenderStats(ctx context.Context, ownerID string) (*domain.LenderStats, error)
	// UserGrowth buckets non-admin signups into the trailing months
	// calendar windows, oldest first.
	UserGrowth(ctx context.Context, months int) ([]domain.MonthlyCount, error)
	RentalGrowth(ctx context.Context, ownerID string, months int) ([]domain.MonthlyCount, error)
	ListUsers(ctx context.Context, search string, role domain.Role, page, pageSize int32) ([]domain.Profile, int32, error)
	PopularEquipment(ctx context.Context, limit int32) ([]PopularListing, error)
}

type ProfileService interface {
	// CreateProfile registers a profile row for an identity-provider
	// account. The id and role come from the provider, never the client.
	CreateProfile(ctx context.Context, p *domain.Profile) error
	GetAccountDetails(ctx context.Context, userID string) (*domain.AccountDetails, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, callerID string, patch ProfilePatch) (*domain.Profile, error)
	UpdateAvatar(ctx context.Context, callerID string, image *ImageUpload) (string, error)
	// DeleteAccount removes the caller's own account, both the profile row
	// and the identity-provider account, and revokes open sessions.
	DeleteAccount(ctx context.Context, callerID string) error
	AdminDeleteUser(ctx context.Context, adminID, userID string) error
}

type ContactService interface {
	SubmitInquiry(ctx context.Context, in InquiryInput) (*domain.Inquiry, error)
	ListInquiries(ctx context.Context, callerID string, page, pageSize int32) ([]domain.Inquiry, int32, error)
}

type EmailService interface {
	SendRentalRequestNotification(ctx context.Context, ownerEmail, ownerName, renterName, equipmentName string) error
	SendRentalApprovalNotification(ctx context.Context, renterEmail, renterName, equipmentName, ownerName string) error
	SendRentalRejectionNotification(ctx context.Context, renterEmail, renterName, equipmentName, ownerName string) error
	SendPendingRequestReminder(ctx context.Context, ownerEmail, ownerName, renterName, equipmentName string, requestedAt time.Time) error
	SendInquiryNotification(ctx context.Context, adminEmail string, inq *domain.Inquiry) error
}
