package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/squashd/bugtracker/internal/core/credential"
	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/password"
	"github.com/squashd/bugtracker/internal/core/ports"
)

const (
	minEmailLen    = 10
	minUsernameLen = 3
)

// AuthService implements account and session use-cases on top of the user
// repository, the credential hasher and the session revocation list.
type AuthService struct {
	users    ports.UserRepository
	sessions *SessionManager
	revoker  ports.SessionRevoker
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions *SessionManager, revoker ports.SessionRevoker, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, revoker: revoker, logger: logger}
}

func (s *AuthService) CurrentUser(ctx context.Context, session ports.Session) (*domain.User, error) {
	if session.UserID == 0 {
		return nil, domain.ErrNotAuthenticated
	}
	return s.users.FindByID(ctx, session.UserID)
}

func (s *AuthService) Login(ctx context.Context, email, pass string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if !credential.Verify(user.PasswordHash, pass) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, _, err := s.sessions.Mint(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, session ports.Session) error {
	if session.UserID == 0 {
		return domain.ErrNotAuthenticated
	}
	if err := s.revoker.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", session.UserID).Msg("user logged out")
	return nil
}

// SignUp validates the form in a fixed order where the first failure wins,
// then creates the account and logs the new user in.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, string, error) {
	_, err := s.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, "", domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, "", err
	}
	if len(input.Email) < minEmailLen || !strings.Contains(input.Email, "@") {
		return nil, "", domain.ErrInvalidEmail
	}
	if len(input.Username) < minUsernameLen {
		return nil, "", domain.ErrInvalidUsername
	}
	if !password.Valid(input.Password1) {
		return nil, "", domain.ErrWeakPassword
	}
	if input.Password1 != input.Password2 {
		return nil, "", domain.ErrPasswordMismatch
	}

	hash, err := credential.Hash(input.Password1)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Insert(ctx, input.Email, input.Username, hash)
	if err != nil {
		return nil, "", err
	}

	token, _, err := s.sessions.Mint(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("account created")
	return user, token, nil
}

func (s *AuthService) UpdateUsername(ctx context.Context, session ports.Session, username string) error {
	if session.UserID == 0 {
		return domain.ErrNotAuthenticated
	}
	if username == "" {
		return domain.ErrInvalidUsername
	}
	return s.users.UpdateUsername(ctx, session.UserID, username)
}

func (s *AuthService) UpdatePassword(ctx context.Context, session ports.Session, input ports.UpdatePasswordInput) error {
	if session.UserID == 0 {
		return domain.ErrNotAuthenticated
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return err
	}

	if !credential.Verify(user.PasswordHash, input.OldPassword) {
		return domain.ErrWrongOldPassword
	}
	if !password.Valid(input.NewPassword) {
		return domain.ErrWeakPassword
	}
	if input.NewPassword != input.NewPassword2 {
		return domain.ErrPasswordMismatch
	}

	hash, err := credential.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, session.UserID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", session.UserID).Msg("password updated")
	return nil
}

// DeleteAccount removes the user and, via the repository's transaction,
// every bug it owns. The session token is revoked only after the commit so
// a failed cascade leaves the session usable and the account intact.
func (s *AuthService) DeleteAccount(ctx context.Context, session ports.Session) error {
	if session.UserID == 0 {
		return domain.ErrNotAuthenticated
	}

	if err := s.users.Delete(ctx, session.UserID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("account deletion failed")
		return err
	}

	if err := s.revoker.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		// The account is gone; a dangling token maps to a deleted user and
		// fails auth middleware lookups anyway.
		s.logger.Warn().Err(err).Int64("user_id", session.UserID).Msg("session revocation after deletion failed")
	}

	s.logger.Info().Int64("user_id", session.UserID).Msg("account deleted")
	return nil
}
