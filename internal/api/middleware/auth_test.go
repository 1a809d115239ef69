package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-auth/internal/core/domain"
	"github.com/99minutos/admin-auth/internal/infrastructure/security"
)

func newTokens(t *testing.T) *security.JWTService {
	t.Helper()
	svc, err := security.NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return svc
}

func runGate(t *testing.T, header string, setHeader bool) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setHeader {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newTokens(t))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokens(t)
	want := domain.Identity{ID: "65f1c0ffee0000000000abcd", Email: "root@example.com"}
	signed, err := tokens.Issue(want)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		got, ok := domain.IdentityFromContext(c.Request().Context())
		if !ok {
			t.Fatalf("identity not attached")
		}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tampered := func() string {
		other, _ := security.NewJWTService("other-secret", time.Hour)
		tok, _ := other.Issue(domain.Identity{ID: "a", Email: "a@example.com"})
		return tok
	}()

	cases := []struct {
		name      string
		header    string
		setHeader bool
		want      *domain.AuthError
	}{
		{"missing header", "", false, domain.ErrNoCredentials},
		{"empty header", "", true, domain.ErrNoCredentials},
		{"wrong scheme", "Token abc", true, domain.ErrInvalidTokenFormat},
		{"lowercase scheme", "bearer abc", true, domain.ErrInvalidTokenFormat},
		{"no separator", "Bearerabc", true, domain.ErrInvalidTokenFormat},
		{"bare scheme", "Bearer", true, domain.ErrTokenNotProvided},
		{"empty token", "Bearer ", true, domain.ErrTokenNotProvided},
		{"blank token", "Bearer    ", true, domain.ErrTokenNotProvided},
		{"garbage token", "Bearer not-a-token", true, domain.ErrInvalidToken},
		{"foreign signature", "Bearer " + tampered, true, domain.ErrInvalidToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called, err := runGate(t, tc.header, tc.setHeader)
			if called {
				t.Fatalf("should not reach next")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %q, got %v", tc.want.Message, err)
			}
		})
	}
}
