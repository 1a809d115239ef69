package ports

import "github.com/99minutos/admin-auth/internal/core/domain"

// PasswordHasher hashes passwords with a per-hash salt and checks candidates.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// TokenIssuer signs bearer tokens for an identity.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier decodes and verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	TokenIssuer
	TokenVerifier
}
