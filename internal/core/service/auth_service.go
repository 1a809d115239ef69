package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/99minutos/admin-auth/internal/core/domain"
	"github.com/99minutos/admin-auth/internal/core/ports"
	"github.com/99minutos/admin-auth/internal/core/validation"
)

var (
	emailRules    = validation.MustParseRules("required|email")
	passwordRules = validation.MustParseRules("required|minLength:6")
	nameRules     = validation.MustParseRules("required")
)

// AuthService implements admin registration, login and profile lookup.
type AuthService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	newID  func() string
}

func NewAuthService(repo ports.AdminRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		newID:  func() string { return primitive.NewObjectID().Hex() },
	}
}

// Register validates the input, stores a new active admin and returns the
// token issued for it. Email uniqueness is left to the store.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	err := validation.Validate(
		validation.Field{Name: "email", Value: in.Email, Rules: emailRules},
		validation.Field{Name: "password", Value: in.Password, Rules: passwordRules},
		validation.Field{Name: "name", Value: in.Name, Rules: nameRules},
	)
	if err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	id := s.newID()
	token, err := s.tokens.Issue(domain.Identity{ID: id, Email: in.Email})
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	admin := &domain.Admin{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Image:        domain.DefaultAdminImage,
		IsActive:     true,
		Token:        token,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return "", err
	}

	s.log.Info().Str("admin_id", id).Msg("admin registered")
	return token, nil
}

// Login checks the credentials of an active admin and rotates its stored
// token. Unknown emails and wrong passwords both yield
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	admin, err := s.repo.FindActiveByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !admin.CanAuthenticate() || !s.hasher.Check(in.Password, admin.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{ID: admin.ID, Email: admin.Email})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if err := s.repo.UpdateToken(ctx, admin.ID, token); err != nil {
		return "", err
	}

	s.log.Info().Str("admin_id", admin.ID).Msg("admin logged in")
	return token, nil
}

// Profile returns the public view of the authenticated admin.
func (s *AuthService) Profile(ctx context.Context, adminID string) (*domain.Profile, error) {
	if adminID == "" {
		return nil, domain.ErrAuthRequired
	}

	admin, err := s.repo.FindActiveByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.CanAuthenticate() {
		return nil, domain.ErrAdminNotFound
	}
	return domain.ProfileOf(admin), nil
}
