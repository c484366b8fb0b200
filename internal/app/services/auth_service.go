// Package services holds the business logic between controllers and
// repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/repositories"
	"github.com/rjoshi/gradevault/internal/pkg/apperrors"
	"github.com/rjoshi/gradevault/internal/pkg/cas"
	"github.com/rjoshi/gradevault/internal/pkg/token"
)

// CASProvider is what the auth flow needs from the CAS side: ticket
// validation plus the redirect targets.
type CASProvider interface {
	cas.TicketValidator
	LoginURL() string
	LogoutURL() string
}

// AuthService implements the CAS login bridge: ticket exchange, user
// provisioning, and session token issuance.
type AuthService struct {
	userRepo repositories.IUserRepository
	tokens   *token.Service
	cas      CASProvider
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokens *token.Service,
	casProvider CASProvider,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		cas:      casProvider,
		logger:   logger,
	}
}

// ExchangeTicket verifies a CAS service ticket, provisions a local user on
// first login, and returns a freshly issued session token for the user's
// email.
func (s *AuthService) ExchangeTicket(ctx context.Context, ticket string) (string, error) {
	identity, err := s.cas.ValidateTicket(ticket)
	if err != nil {
		return "", err
	}

	user, err := s.provisionUser(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("failed to provision user: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("CAS login successful")
	return s.tokens.Issue(user.Email)
}

// provisionUser looks up the user by email, creating one from the CAS
// attributes on first login. A concurrent first login can win the insert;
// the duplicate-email error resolves to the row that made it in.
func (s *AuthService) provisionUser(ctx context.Context, identity *cas.Identity) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user = &models.User{
		Email:  identity.Email,
		Name:   identity.Name,
		RollNo: identity.RollNo,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return s.userRepo.GetByEmail(ctx, identity.Email)
		}
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("rollno", user.RollNo).Msg("Provisioned new user")
	return user, nil
}

// HasValidSession reports whether the token is currently valid. It does
// not revalidate against CAS; a user removed there stays logged in here
// until the token expires.
func (s *AuthService) HasValidSession(tokenString string) bool {
	_, err := s.tokens.Validate(tokenString)
	return err == nil
}

// CurrentUser resolves a session token to the local user record.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	email, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// LoginURL is the CAS login redirect target.
func (s *AuthService) LoginURL() string {
	return s.cas.LoginURL()
}

// LogoutURL is the CAS logout redirect target.
func (s *AuthService) LogoutURL() string {
	return s.cas.LogoutURL()
}
