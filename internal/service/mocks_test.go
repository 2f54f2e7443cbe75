package service_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/identity"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProfileRepo) List(ctx context.Context, search string, role domain.Role, page, pageSize int32) ([]domain.Profile, int32, error) {
	args := m.Called(ctx, search, role, page, pageSize)
	return args.Get(0).([]domain.Profile), args.Get(1).(int32), args.Error(2)
}
func (m *MockProfileRepo) CountByRole(ctx context.Context, role domain.Role) (int32, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockProfileRepo) CountAccounts(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockProfileRepo) CreationTimesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]time.Time), args.Error(1)
}
func (m *MockProfileRepo) AvatarURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) IncrementRentalCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) CountByOwner(ctx context.Context, ownerID string) (int32, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) TopByRentalCount(ctx context.Context, limit int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ImageURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockEquipmentRepo) ListTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentType), args.Error(1)
}
func (m *MockEquipmentRepo) GetType(ctx context.Context, id string) (*domain.EquipmentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentType), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByEquipment(ctx context.Context, equipmentID string, page, pageSize int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, equipmentID, page, pageSize)
	return args.Get(0).([]domain.Review), args.Get(1).(int32), args.Error(2)
}
func (m *MockReviewRepo) AllByEquipment(ctx context.Context, equipmentID string) ([]domain.Review, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ExistsByAuthor(ctx context.Context, equipmentID, userID string) (bool, error) {
	args := m.Called(ctx, equipmentID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) Recent(ctx context.Context, limit int32) ([]domain.Review, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) TransitionStatus(ctx context.Context, id string, target domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, id, target)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	args := m.Called(ctx, ownerID, status, search, page, pageSize)
	return args.Get(0).([]domain.RentalListItem), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID string, status domain.RentalStatus, search string, page, pageSize int32) ([]domain.RentalListItem, int32, error) {
	args := m.Called(ctx, renterID, status, search, page, pageSize)
	return args.Get(0).([]domain.RentalListItem), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) CountByOwner(ctx context.Context, ownerID string, status domain.RentalStatus) (int32, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRentalRepo) CreationTimesSinceByOwner(ctx context.Context, ownerID string, since time.Time) ([]time.Time, error) {
	args := m.Called(ctx, ownerID, since)
	return args.Get(0).([]time.Time), args.Error(1)
}
func (m *MockRentalRepo) PendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.RentalListItem, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.RentalListItem), args.Error(1)
}

// MockInquiryRepo
type MockInquiryRepo struct {
	mock.Mock
}

func (m *MockInquiryRepo) Create(ctx context.Context, in *domain.Inquiry) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}
func (m *MockInquiryRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Inquiry, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Inquiry), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalRequestNotification(ctx context.Context, ownerEmail, ownerName, renterName, equipmentName string) error {
	args := m.Called(ctx, ownerEmail, ownerName, renterName, equipmentName)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalApprovalNotification(ctx context.Context, renterEmail, renterName, equipmentName, ownerName string) error {
	args := m.Called(ctx, renterEmail, renterName, equipmentName, ownerName)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalRejectionNotification(ctx context.Context, renterEmail, renterName, equipmentName, ownerName string) error {
	args := m.Called(ctx, renterEmail, renterName, equipmentName, ownerName)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingRequestReminder(ctx context.Context, ownerEmail, ownerName, renterName, equipmentName string, requestedAt time.Time) error {
	args := m.Called(ctx, ownerEmail, ownerName, renterName, equipmentName, requestedAt)
	return args.Error(0)
}
func (m *MockEmailService) SendInquiryNotification(ctx context.Context, adminEmail string, inq *domain.Inquiry) error {
	args := m.Called(ctx, adminEmail, inq)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) KeyFromURL(u string) string {
	args := m.Called(u)
	return args.String(0)
}
func (m *MockStorage) DeleteUnreferenced(ctx context.Context, olderThan time.Time, referenced map[string]bool) (int, error) {
	args := m.Called(ctx, olderThan, referenced)
	return args.Int(0), args.Error(1)
}

// MockIdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}
func (m *MockIdentityProvider) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockIdentityProvider) RevokeSessions(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
