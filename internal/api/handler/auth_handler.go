package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-auth/internal/api/metrics"
	"github.com/99minutos/admin-auth/internal/api/response"
	"github.com/99minutos/admin-auth/internal/core/domain"
	"github.com/99minutos/admin-auth/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new admin account and returns its bearer token.
//
// @Summary      Register a new admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Admin registration details"
// @Success      200   {object}  response.Envelope{data=tokenResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Failure      422   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /admin/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Admin registered successfully", tokenResponse{Token: token})
}

// Login authenticates an admin and returns a fresh bearer token.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=tokenResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Admin login successful", tokenResponse{Token: token})
}

// Profile returns the authenticated admin's profile.
//
// @Summary      Current admin profile
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  response.Envelope{data=domain.Profile}
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /admin/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	profile, err := h.authService.Profile(c.Request().Context(), identityOf(c).ID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Successfully retrieved admin profile", profile)
}

func registerResult(err error) string {
	var (
		ve  *domain.ValidationError
		dup *domain.DuplicateKeyError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ve):
		return "validation_error"
	case errors.As(err, &dup):
		return "duplicate"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
