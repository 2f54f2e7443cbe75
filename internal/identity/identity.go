package identity

import (
	"context"

	"agrorent-backend/internal/domain"
)

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	ID    string
	Email string
	Role  domain.Role
}

// Provider is the identity-provider boundary. Every core operation receives
// the caller explicitly; this interface only turns a bearer token into that
// caller and manages provider-side account lifecycle.
type Provider interface {
	// Verify resolves a session token to the caller identity.
	// Returns domain.ErrUnauthorized for missing, malformed or expired
	// tokens.
	Verify(ctx context.Context, token string) (*Identity, error)

	// DeleteUser removes the account on the provider side.
	DeleteUser(ctx context.Context, userID string) error

	// RevokeSessions invalidates every outstanding session of the user.
	RevokeSessions(ctx context.Context, userID string) error
}
