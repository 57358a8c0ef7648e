package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal is an authenticated actor with a resolved role.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"profile"`
}

// Profile is the stored form of a principal.
type Profile struct {
	Principal
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"token"`
	Principal Principal `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}
