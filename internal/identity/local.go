package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/repository"
	"agrorent-backend/internal/security"
)

// LocalProvider is the development/testing identity provider: passwords are
// bcrypt hashes on the profile rows and sessions are signed JWTs. It mirrors
// the mock-vs-cloud switch the storage layer uses.
type LocalProvider struct {
	profiles repository.ProfileRepository
	tokens   security.TokenManager

	mu      sync.Mutex
	revoked map[string]time.Time // user id -> tokens issued before this are dead
}

func NewLocalProvider(profiles repository.ProfileRepository, tokens security.TokenManager) *LocalProvider {
	return &LocalProvider{
		profiles: profiles,
		tokens:   tokens,
		revoked:  make(map[string]time.Time),
	}
}

// Login checks the password against the stored hash and issues a session
// token. The error is the same for unknown email and wrong password.
func (p *LocalProvider) Login(ctx context.Context, email, password string) (string, error) {
	profile, err := p.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Validationf("Invalid email or password")
		}
		return "", domain.Upstream("load profile", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", domain.Validationf("Invalid email or password")
	}
	token, err := p.tokens.GenerateSessionToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return "", domain.Upstream("sign session token", err)
	}
	return token, nil
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	p.mu.Lock()
	cutoff, ok := p.revoked[claims.UserID]
	p.mu.Unlock()
	if ok && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(cutoff) {
		return nil, domain.ErrUnauthorized
	}

	if !claims.Role.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return &Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// DeleteUser only revokes sessions here; the profile row itself is removed
// by the profile service.
func (p *LocalProvider) DeleteUser(ctx context.Context, userID string) error {
	return p.RevokeSessions(ctx, userID)
}

func (p *LocalProvider) RevokeSessions(ctx context.Context, userID string) error {
	p.mu.Lock()
	p.revoked[userID] = time.Now()
	p.mu.Unlock()
	return nil
}

// HashPassword is the bcrypt helper used at signup and password change.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
