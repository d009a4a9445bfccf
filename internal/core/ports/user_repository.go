package ports

import (
	"context"

	"github.com/squashd/bugtracker/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail retrieves the user registered under email. The comparison
	// is exact (case-sensitive). Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Insert stores a new user and returns it with its assigned ID.
	// A uniqueness violation on email maps to domain.ErrDuplicateEmail.
	Insert(ctx context.Context, email, username, passwordHash string) (*domain.User, error)
	UpdateUsername(ctx context.Context, userID int64, username string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	// Delete removes the user and every bug it owns in a single
	// transaction. Partial deletion is never committed.
	Delete(ctx context.Context, userID int64) error
}
