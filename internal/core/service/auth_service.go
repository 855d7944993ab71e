package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-api/internal/core/domain"
	"github.com/contactdesk/contact-api/internal/core/password"
	"github.com/contactdesk/contact-api/internal/core/ports"
	"github.com/contactdesk/contact-api/internal/core/token"
)

// AuthService orchestrates registration, login, and access-token refresh.
// It is stateless; all collaborators are injected and the service is safe
// for concurrent use.
type AuthService struct {
	users  ports.UserRepository
	hasher *password.Hasher
	tokens *token.Issuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *password.Hasher, tokens *token.Issuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates an account with a hashed credential. The pre-insert
// existence check catches the common duplicate case; a concurrent register
// racing past it is stopped by the store's unique index, which the
// repository reports as the same ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.UserResult, error) {
	total, err := s.users.CountByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if total != 0 {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")

	return &ports.UserResult{Username: created.Username, Name: created.Name}, nil
}

// Login verifies the credential and mints an access/refresh token pair.
// An unknown username and a wrong password fail with the same error so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.UserResult, error) {
	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(user, token.ClassAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(user, token.ClassRefresh)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.UserResult{
		Username:     user.Username,
		Name:         user.Name,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// RefreshAccessToken verifies a refresh-class token and mints a fresh access
// token for its subject. The presented refresh token is not rotated and
// stays valid until its own expiry. Verification failures are logged with
// full detail but surface only as ErrInvalidToken.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*ports.UserResult, error) {
	claims, err := s.tokens.Verify(refreshToken, token.ClassRefresh)
	if err != nil {
		s.logger.Error().Err(err).Msg("refresh token rejected")
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.Issue(user, token.ClassAccess)
	if err != nil {
		s.logger.Error().Err(err).Msg("access token issuance failed")
		return nil, domain.ErrTokenIssuance
	}

	return &ports.UserResult{
		Username:    user.Username,
		Name:        user.Name,
		AccessToken: access,
	}, nil
}
