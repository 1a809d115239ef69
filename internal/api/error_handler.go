package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-auth/internal/api/response"
	"github.com/99minutos/admin-auth/internal/core/domain"
)

const internalErrorMessage = "Internal Server Error"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs storage and unexpected errors without leaking details to the client.
//   - Renders the {"status": false, "message": ...} envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, detail := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = response.Failure(c, code, msg, detail)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	var (
		ve  *domain.ValidationError
		dup *domain.DuplicateKeyError
		nf  *domain.NotFoundError
		ae  *domain.AuthError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ve.Message, nil
	case errors.As(err, &dup):
		return http.StatusConflict, dup.Error(), map[string]string{"field": dup.Field}
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Message, nil
	case errors.As(err, &ae):
		return http.StatusUnauthorized, ae.Message, nil
	}

	// Storage failures and anything unexpected: log the cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, internalErrorMessage, nil
}
