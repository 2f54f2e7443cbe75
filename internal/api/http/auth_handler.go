package http

import (
	"net/http"

	"github.com/google/uuid"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/identity"
	"agrorent-backend/internal/service"
)

// AuthHandler serves signup and login for the local identity provider.
// With Firebase both happen on the client; the server only sees ID tokens.
type AuthHandler struct {
	provider   *identity.LocalProvider
	profileSvc service.ProfileService
}

func NewAuthHandler(provider *identity.LocalProvider, profileSvc service.ProfileService) *AuthHandler {
	return &AuthHandler{provider: provider, profileSvc: profileSvc}
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	token, err := h.provider.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Token: token})
}

type registerForm struct {
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	Address   string      `json:"address"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	// Admin accounts are provisioned out of band.
	if form.Role != domain.RoleFarmer && form.Role != domain.RoleLender {
		respondError(w, domain.Validationf("role must be farmer or lender"))
		return
	}
	if len(form.Password) < 8 {
		respondError(w, domain.Validationf("password must be at least 8 characters"))
		return
	}
	hash, err := identity.HashPassword(form.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	p := &domain.Profile{
		ID:           uuid.NewString(),
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Role:         form.Role,
		Address:      form.Address,
		PasswordHash: hash,
	}
	if err := h.profileSvc.CreateProfile(r.Context(), p); err != nil {
		respondError(w, err)
		return
	}
	token, err := h.provider.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{Token: token})
}
