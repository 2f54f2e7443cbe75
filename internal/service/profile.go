package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/identity"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/storage"
	"agrorent-backend/internal/utils"
)

type profileService struct {
	profileRepo repository.ProfileRepository
	provider    identity.Provider
	storage     storage.StorageInterface
	log         *slog.Logger
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	provider identity.Provider,
	store storage.StorageInterface,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		provider:    provider,
		storage:     store,
		log:         logger.WithService("profile"),
	}
}

func (s *profileService) CreateProfile(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		return domain.Validationf("profile id is required")
	}
	if strings.TrimSpace(p.Email) == "" || !strings.Contains(p.Email, "@") {
		return domain.Validationf("a valid email address is required")
	}
	if !p.Role.Valid() {
		return domain.Validationf("unknown role %q", p.Role)
	}
	if p.Subscription == "" {
		p.Subscription = domain.SubscriptionFree
	}
	if existing, err := s.profileRepo.GetByEmail(ctx, p.Email); err == nil && existing != nil {
		return domain.Validationf("an account with this email already exists")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.StoreErr("profile lookup", err)
	}
	return domain.StoreErr("profile insert", s.profileRepo.Create(ctx, p))
}

func (s *profileService) GetAccountDetails(ctx context.Context, userID string) (*domain.AccountDetails, error) {
	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.StoreErr("profile lookup", err)
	}
	return &domain.AccountDetails{
		Role:         p.Role,
		AccountAge:   utils.HumanizeSince(p.CreatedAt, time.Now()),
		Subscription: p.Subscription,
	}, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, userID)
	return p, domain.StoreErr("profile lookup", err)
}

func (s *profileService) UpdateProfile(ctx context.Context, callerID string, patch ProfilePatch) (*domain.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, domain.StoreErr("profile lookup", err)
	}

	if patch.Username != nil {
		if strings.TrimSpace(*patch.Username) == "" {
			return nil, domain.Validationf("username must not be blank")
		}
		p.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.FirstName != nil {
		p.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		p.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Address != nil {
		p.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.ContactNumber != nil {
		p.ContactNumber = strings.TrimSpace(*patch.ContactNumber)
	}

	if err := s.profileRepo.Update(ctx, p); err != nil {
		return nil, domain.StoreErr("profile update", err)
	}
	return p, nil
}

func (s *profileService) UpdateAvatar(ctx context.Context, callerID string, image *ImageUpload) (string, error) {
	if image == nil {
		return "", domain.Validationf("avatar image is required")
	}
	p, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		return "", domain.StoreErr("profile lookup", err)
	}

	key := objectKey("avatars", image.FileName)
	url, err := s.storage.Upload(ctx, key, image.ContentType, image.Content)
	if err != nil {
		return "", domain.StoreErr("avatar upload", err)
	}

	oldURL := p.AvatarURL
	p.AvatarURL = url
	if err := s.profileRepo.Update(ctx, p); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("orphan avatar cleanup failed", "key", key, "error", delErr)
		}
		return "", domain.StoreErr("profile update", err)
	}

	if oldURL != "" {
		if oldKey := s.storage.KeyFromURL(oldURL); oldKey != "" {
			if delErr := s.storage.Delete(ctx, oldKey); delErr != nil {
				s.log.Warn("stale avatar cleanup failed", "key", oldKey, "error", delErr)
			}
		}
	}
	return url, nil
}

func (s *profileService) DeleteAccount(ctx context.Context, callerID string) error {
	return s.deleteUser(ctx, callerID)
}

func (s *profileService) AdminDeleteUser(ctx context.Context, adminID, userID string) error {
	admin, err := s.profileRepo.GetByID(ctx, adminID)
	if err != nil {
		return domain.StoreErr("profile lookup", err)
	}
	if admin.Role != domain.RoleAdmin {
		return domain.ErrUnauthorized
	}
	if adminID == userID {
		return domain.Validationf("admins cannot delete their own account here")
	}
	return s.deleteUser(ctx, userID)
}

func (s *profileService) deleteUser(ctx context.Context, userID string) error {
	if _, err := s.profileRepo.GetByID(ctx, userID); err != nil {
		return domain.StoreErr("profile lookup", err)
	}
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		return domain.StoreErr("profile delete", err)
	}

	// The profile row is the source of truth. Provider-side deletion is
	// retried manually if it fails, so only log here.
	if err := s.provider.RevokeSessions(ctx, userID); err != nil {
		s.log.Warn("session revocation failed", "user_id", userID, "error", err)
	}
	if err := s.provider.DeleteUser(ctx, userID); err != nil {
		s.log.Error("identity provider deletion failed", "user_id", userID, "error", err)
	}
	return nil
}
