package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleFarmer Role = "farmer"
	RoleLender Role = "lender"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleLender, RoleAdmin:
		return true
	}
	return false
}

type Subscription string

const (
	SubscriptionFree    Subscription = "free"
	SubscriptionPremium Subscription = "premium"
)

// Profile is one platform account, keyed by the same opaque identifier the
// identity provider uses. Role is assigned at signup and never changes.
type Profile struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	Role          Role         `json:"role"`
	Address       string       `json:"address"`
	ContactNumber string       `json:"contact_number"`
	AvatarURL     string       `json:"avatar_url"`
	Subscription  Subscription `json:"subscription"`
	PasswordHash  string       `json:"-"` // local identity mode only
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// DisplayName joins first and last name, falling back to the username and
// then a placeholder when both are blank.
func (p *Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	if p.Username != "" {
		return p.Username
	}
	return "Unknown User"
}
