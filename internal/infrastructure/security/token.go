package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

var (
	// ErrEmptySigningKey is returned when the service is built without a secret.
	ErrEmptySigningKey = errors.New("jwt signing secret is empty")
	// ErrInvalidToken wraps every verification failure: bad signature,
	// unexpected algorithm, malformed structure, expiry or missing claims.
	ErrInvalidToken = errors.New("invalid token")
)

type adminClaims struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 bearer tokens carrying an admin's id
// and email.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds a token service signing with secret. A ttl of zero
// issues tokens without an expiry.
func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, ErrEmptySigningKey
	}
	if ttl < 0 {
		ttl = 0
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token embedding id.ID and id.Email.
func (s *JWTService) Issue(id domain.Identity) (string, error) {
	now := s.now()
	claims := adminClaims{
		ID:    id.ID,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       ulid.Make().String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and registered claims of token and returns
// the identity it carries.
func (s *JWTService) Verify(token string) (domain.Identity, error) {
	claims := &adminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, ErrInvalidToken
	}
	if claims.ID == "" || claims.Email == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	return domain.Identity{ID: claims.ID, Email: claims.Email}, nil
}
