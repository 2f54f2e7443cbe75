package http

import (
	"net/http"
	"strings"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/identity"
	"agrorent-backend/internal/logger"
)

// AuthMiddleware resolves bearer tokens through the identity provider and
// stores the caller on the request context.
type AuthMiddleware struct {
	provider identity.Provider
}

func NewAuthMiddleware(provider identity.Provider) *AuthMiddleware {
	return &AuthMiddleware{provider: provider}
}

func (m *AuthMiddleware) token(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return ""
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Require rejects requests without a valid session token.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.token(r)
		if token == "" {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		caller, err := m.provider.Verify(r.Context(), token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired session"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// Optional resolves the caller when a token is present but lets anonymous
// requests through. Public catalog pages use it for the owner-scoped view.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := m.token(r); token != "" {
			if caller, err := m.provider.Verify(r.Context(), token); err == nil {
				r = r.WithContext(WithCaller(r.Context(), caller))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole wraps Require and additionally checks the caller's role.
func (m *AuthMiddleware) RequireRole(role domain.Role, next http.Handler) http.Handler {
	return m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := CallerFromContext(r.Context())
		if err != nil || caller.Role != role {
			respondError(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
