package domain

import "time"

// Inquiry is a contact-form submission. It is stored and then forwarded to
// the platform admin address as a best-effort email.
type Inquiry struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
