package ports

import (
	"context"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

// AdminRepository defines the persistence operations for admin accounts.
//
// Find methods only return admins that are active and not soft-deleted and
// report domain.ErrAdminNotFound otherwise. Create reports a
// *domain.DuplicateKeyError when the email is already taken.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	FindActiveByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Admin, error)
	UpdateToken(ctx context.Context, id, token string) error
}
