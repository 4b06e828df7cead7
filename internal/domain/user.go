package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthPayload is the response shape for register/login/profile endpoints:
// the user identity plus a fresh bearer token.
type AuthPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*AuthPayload, error)
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	GetProfile(ctx context.Context) (*AuthPayload, error)
	UpdateProfile(ctx context.Context, name, email, password string) (*AuthPayload, error)
	ListUsers(ctx context.Context) ([]User, error)

	// CreateAdmin bootstraps the very first (admin) account. It is refused
	// once any user exists, and the secret must match the configured value.
	CreateAdmin(ctx context.Context, name, email, password, secret string) (*AuthPayload, error)

	// GetCurrentUser resolves an authenticated user id to its record.
	// Used by the auth middleware to attach a fresh identity.
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
