package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"agrorent-backend/internal/domain"
)

// NewFirebaseApp initializes the Firebase app shared by the identity
// provider and the cloud storage backend.
func NewFirebaseApp(ctx context.Context, credentialsFile, projectID, storageBucket string) (*firebase.App, error) {
	cfg := &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: storageBucket,
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return app, nil
}

// FirebaseProvider resolves callers from Firebase Auth ID tokens. The role
// lives in a custom claim set at signup and never changes afterwards.
type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(ctx context.Context, app *firebase.App) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	id := &Identity{ID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := decoded.Claims["role"].(string); ok {
		id.Role = domain.Role(role)
	}
	if !id.Role.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, userID string) error {
	if err := p.client.DeleteUser(ctx, userID); err != nil {
		return domain.Upstream("firebase delete user", err)
	}
	return nil
}

func (p *FirebaseProvider) RevokeSessions(ctx context.Context, userID string) error {
	if err := p.client.RevokeRefreshTokens(ctx, userID); err != nil {
		return domain.Upstream("firebase revoke sessions", err)
	}
	return nil
}
