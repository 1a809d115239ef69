package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

// identityOf returns the caller attached by the auth middleware. The zero
// Identity is returned when the middleware did not run, which the auth
// service rejects as unauthenticated.
func identityOf(c echo.Context) domain.Identity {
	id, _ := domain.IdentityFromContext(c.Request().Context())
	return id
}
