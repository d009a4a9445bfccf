package ports

import (
	"context"

	"github.com/squashd/bugtracker/internal/core/domain"
)

// Session identifies the authenticated user bound to a request, together
// with the token ID used for revocation on logout.
type Session struct {
	UserID  int64
	TokenID string
	// ExpiresAt is the token's natural expiry as a unix timestamp; the
	// revocation list keeps a revoked TokenID at least this long.
	ExpiresAt int64
}

// SignUpInput carries the sign-up form fields. Password2 is the
// confirmation re-type of Password1.
type SignUpInput struct {
	Email     string
	Username  string
	Password1 string
	Password2 string
}

// UpdatePasswordInput carries the change-password form fields.
type UpdatePasswordInput struct {
	OldPassword  string
	NewPassword  string
	NewPassword2 string
}

// AuthService defines account and session use-cases.
type AuthService interface {
	// CurrentUser resolves the account behind an authenticated session,
	// for rendering. Returns domain.ErrUserNotFound for deleted accounts.
	CurrentUser(ctx context.Context, session Session) (*domain.User, error)
	// Login returns the matched user and a signed session token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Logout revokes the session's token; subsequent requests carrying it
	// are anonymous again.
	Logout(ctx context.Context, session Session) error
	// SignUp validates, creates the account and returns the new user with
	// a signed session token (sign-up logs the user in).
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, string, error)
	UpdateUsername(ctx context.Context, session Session, username string) error
	UpdatePassword(ctx context.Context, session Session, input UpdatePasswordInput) error
	// DeleteAccount removes the user and every bug it owns, then revokes
	// the session. The confirmation round-trip happens at the HTTP layer;
	// by the time this is called the user has explicitly confirmed.
	DeleteAccount(ctx context.Context, session Session) error
}
