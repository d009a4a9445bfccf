package ports

import (
	"context"
	"time"

	"github.com/squashd/bugtracker/internal/core/domain"
)

// SearchCategory selects the bug field a search keyword is matched against.
type SearchCategory string

const (
	SearchByTitle       SearchCategory = "title"
	SearchByStatus      SearchCategory = "status"
	SearchByPriority    SearchCategory = "priority"
	SearchByDateCreated SearchCategory = "date_created"
)

// BugRepository defines persistence operations for bug reports.
type BugRepository interface {
	// Insert stores a new bug and returns it with its assigned ID.
	Insert(ctx context.Context, bug *domain.Bug) (*domain.Bug, error)
	// FindByID returns domain.ErrBugNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.Bug, error)
	// ListByOwner returns all bugs owned by ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Bug, error)
	// ListAll returns every bug in the system regardless of owner.
	ListAll(ctx context.Context) ([]*domain.Bug, error)
	// Update overwrites the four mutable fields of the bug with the given ID.
	// Returns domain.ErrBugNotFound when absent.
	Update(ctx context.Context, id int64, title, description, status, priority string) error
	// Delete returns domain.ErrBugNotFound when absent.
	Delete(ctx context.Context, id int64) error
	// SearchText performs a case-insensitive substring match of keyword
	// against the given text category (title, status or priority).
	SearchText(ctx context.Context, category SearchCategory, keyword string) ([]*domain.Bug, error)
	// SearchDateCreated returns bugs whose creation time equals ts exactly.
	SearchDateCreated(ctx context.Context, ts time.Time) ([]*domain.Bug, error)
}
