package domain

import "time"

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated actor resolved for a single request.
// It is only obtainable through the auth guard; business logic never
// sees a half-populated identity.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
}

// IsPro reports whether the identity is on the paid plan tier.
func (i Identity) IsPro() bool {
	return i.Plan == PlanPro
}
