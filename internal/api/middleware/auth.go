package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-auth/internal/api/metrics"
	"github.com/99minutos/admin-auth/internal/core/domain"
	"github.com/99minutos/admin-auth/internal/core/ports"
)

const bearerScheme = "Bearer"

var rejectionReasons = map[*domain.AuthError]string{
	domain.ErrNoCredentials:      "no_credentials",
	domain.ErrInvalidTokenFormat: "invalid_format",
	domain.ErrTokenNotProvided:   "empty_token",
	domain.ErrInvalidToken:       "invalid_token",
}

// Auth verifies the bearer token of each request and attaches the decoded
// domain.Identity to the request context. Rejections are returned as
// *domain.AuthError values for the HTTP error handler to render.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return reject(err)
			}

			id, verr := tokens.Verify(token)
			if verr != nil {
				return reject(domain.ErrInvalidToken)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is case-sensitive. A bare "Bearer" is what net/http leaves of
// "Bearer " after trimming, so it counts as an empty token.
func bearerToken(header string) (string, *domain.AuthError) {
	switch {
	case header == "":
		return "", domain.ErrNoCredentials
	case header == bearerScheme:
		return "", domain.ErrTokenNotProvided
	case !strings.HasPrefix(header, bearerScheme+" "):
		return "", domain.ErrInvalidTokenFormat
	}

	token := strings.TrimSpace(header[len(bearerScheme)+1:])
	if token == "" {
		return "", domain.ErrTokenNotProvided
	}
	return token, nil
}

func reject(err *domain.AuthError) error {
	metrics.GateRejectionsTotal.WithLabelValues(rejectionReasons[err]).Inc()
	return err
}
