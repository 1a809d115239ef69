package domain

import "fmt"

// ValidationError reports the first rule an input violated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DuplicateKeyError reports a uniqueness violation raised by the store.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "Duplicate key error on field: " + e.Field
}

// NotFoundError reports that no active, non-deleted admin matched.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthError reports missing, malformed or rejected credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StorageError wraps an unclassified persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so that login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = &NotFoundError{Message: "invalid credentials or admin not found"}
	ErrAdminNotFound      = &NotFoundError{Message: "admin profile not found"}

	ErrNoCredentials      = &AuthError{Message: "no credentials sent"}
	ErrInvalidTokenFormat = &AuthError{Message: "invalid token format"}
	ErrTokenNotProvided   = &AuthError{Message: "token not provided"}
	ErrInvalidToken       = &AuthError{Message: "invalid or expired token"}
	ErrAuthRequired       = &AuthError{Message: "authentication required"}
)
