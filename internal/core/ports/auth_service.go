package ports

import (
	"context"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

// RegisterInput carries the fields accepted by the register endpoint.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries the credentials accepted by the login endpoint.
type LoginInput struct {
	Email    string
	Password string
}

// AuthService defines the admin authentication use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, in LoginInput) (string, error)
	Profile(ctx context.Context, adminID string) (*domain.Profile, error)
}
