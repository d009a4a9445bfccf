package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
)

// BugService implements bug report use-cases on top of the bug repository.
type BugService struct {
	bugs   ports.BugRepository
	logger zerolog.Logger
	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

func NewBugService(bugs ports.BugRepository, logger zerolog.Logger) *BugService {
	return &BugService{bugs: bugs, logger: logger, now: time.Now}
}

func (s *BugService) Create(ctx context.Context, ownerID int64, input ports.BugInput) (*domain.Bug, error) {
	if input.Title == "" || input.Description == "" || input.Status == "" || input.Priority == "" {
		return nil, domain.ErrValidation
	}

	bug, err := s.bugs.Insert(ctx, &domain.Bug{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DateCreated: s.now().UTC().Truncate(time.Second),
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("bug_id", bug.ID).Int64("owner_id", ownerID).Msg("bug created")
	return bug, nil
}

func (s *BugService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Bug, error) {
	return s.bugs.ListByOwner(ctx, ownerID)
}

func (s *BugService) ListAll(ctx context.Context) ([]*domain.Bug, error) {
	return s.bugs.ListAll(ctx)
}

func (s *BugService) Update(ctx context.Context, actorID, bugID int64, input ports.BugInput) (*domain.Bug, error) {
	if input.Title == "" || input.Description == "" || input.Status == "" || input.Priority == "" {
		return nil, domain.ErrValidation
	}

	bug, err := s.bugs.FindByID(ctx, bugID)
	if err != nil {
		return nil, err
	}
	if bug.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	if err := s.bugs.Update(ctx, bugID, input.Title, input.Description, input.Status, input.Priority); err != nil {
		return nil, err
	}

	bug.Title = input.Title
	bug.Description = input.Description
	bug.Status = input.Status
	bug.Priority = input.Priority
	return bug, nil
}

func (s *BugService) Delete(ctx context.Context, actorID, bugID int64) error {
	bug, err := s.bugs.FindByID(ctx, bugID)
	if err != nil {
		return err
	}
	if bug.OwnerID != actorID {
		return domain.ErrForbidden
	}

	if err := s.bugs.Delete(ctx, bugID); err != nil {
		return err
	}

	s.logger.Info().Int64("bug_id", bugID).Int64("actor_id", actorID).Msg("bug deleted")
	return nil
}

// Search matches keyword against a single bug field. Text categories use
// case-insensitive substring matching; date_created requires the keyword to
// parse as an exact timestamp, which is then matched by equality (not a
// range).
func (s *BugService) Search(ctx context.Context, keyword string, category ports.SearchCategory) ([]*domain.Bug, error) {
	switch category {
	case ports.SearchByTitle, ports.SearchByStatus, ports.SearchByPriority:
		return s.bugs.SearchText(ctx, category, keyword)
	case ports.SearchByDateCreated:
		ts, err := time.Parse(domain.DateLayout, keyword)
		if err != nil {
			return nil, domain.ErrInvalidDateFormat
		}
		return s.bugs.SearchDateCreated(ctx, ts)
	default:
		return nil, domain.ErrInvalidCategory
	}
}
