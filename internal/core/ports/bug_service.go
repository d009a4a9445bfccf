package ports

import (
	"context"

	"github.com/squashd/bugtracker/internal/core/domain"
)

// BugInput carries the four caller-supplied bug fields.
type BugInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
}

// BugService defines bug report use-cases. Every operation requires an
// authenticated session; the HTTP layer guarantees ownerID/actorID come
// from a verified token.
type BugService interface {
	// Create stores a new bug owned by ownerID with date_created set to now.
	Create(ctx context.Context, ownerID int64, input BugInput) (*domain.Bug, error)
	// ListByOwner is the scoped listing backing the page view.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Bug, error)
	// ListAll is the intentionally unscoped listing backing /json. It is a
	// distinct capability from ListByOwner so a future migration can choose
	// which behavior to keep.
	ListAll(ctx context.Context) ([]*domain.Bug, error)
	// Update overwrites the four mutable fields. Fails with
	// domain.ErrForbidden when actorID does not own the bug.
	Update(ctx context.Context, actorID, bugID int64, input BugInput) (*domain.Bug, error)
	// Delete fails with domain.ErrForbidden when actorID does not own the bug.
	Delete(ctx context.Context, actorID, bugID int64) error
	// Search matches keyword against the given category across all bugs.
	Search(ctx context.Context, keyword string, category SearchCategory) ([]*domain.Bug, error)
}
