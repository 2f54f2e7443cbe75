package http

import (
	"context"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/identity"
)

type contextKey string

const callerKey contextKey = "caller"

// WithCaller stores the authenticated caller on the request context.
func WithCaller(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, callerKey, id)
}

// CallerFromContext returns the authenticated caller, or ErrUnauthorized
// when the request never passed the auth middleware.
func CallerFromContext(ctx context.Context) (*identity.Identity, error) {
	id, ok := ctx.Value(callerKey).(*identity.Identity)
	if !ok || id == nil {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}
