package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
)

const bugColumns = `id, title, description, status, priority, date_created, owner_id`

// BugRepository is the SQLite-backed ports.BugRepository. Timestamps are
// stored as text in domain.DateLayout so the exact-equality date search
// compares the same representation the API emits.
type BugRepository struct {
	db *sql.DB
}

func NewBugRepository(db *sql.DB) *BugRepository {
	return &BugRepository{db: db}
}

func (r *BugRepository) Insert(ctx context.Context, bug *domain.Bug) (*domain.Bug, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bugs (title, description, status, priority, date_created, owner_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		bug.Title, bug.Description, bug.Status, bug.Priority,
		bug.DateCreated.Format(domain.DateLayout), bug.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("bug insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("bug insert id: %w", err)
	}

	created := *bug
	created.ID = id
	return &created, nil
}

func (r *BugRepository) FindByID(ctx context.Context, id int64) (*domain.Bug, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bugColumns+` FROM bugs WHERE id = ?`, id)

	bug, err := scanBug(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBugNotFound
		}
		return nil, err
	}
	return bug, nil
}

func (r *BugRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Bug, error) {
	return r.query(ctx,
		`SELECT `+bugColumns+` FROM bugs WHERE owner_id = ? ORDER BY id`, ownerID)
}

func (r *BugRepository) ListAll(ctx context.Context) ([]*domain.Bug, error) {
	return r.query(ctx, `SELECT `+bugColumns+` FROM bugs ORDER BY id`)
}

func (r *BugRepository) Update(ctx context.Context, id int64, title, description, status, priority string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bugs SET title = ?, description = ?, status = ?, priority = ? WHERE id = ?`,
		title, description, status, priority, id)
	if err != nil {
		return fmt.Errorf("bug update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bug update: %w", err)
	}
	if n == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

func (r *BugRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bugs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("bug delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bug delete: %w", err)
	}
	if n == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

// SearchText performs a case-insensitive substring match against one of the
// text categories. The column is chosen from a fixed allowlist, never from
// caller input.
func (r *BugRepository) SearchText(ctx context.Context, category ports.SearchCategory, keyword string) ([]*domain.Bug, error) {
	var column string
	switch category {
	case ports.SearchByTitle:
		column = "title"
	case ports.SearchByStatus:
		column = "status"
	case ports.SearchByPriority:
		column = "priority"
	default:
		return nil, domain.ErrInvalidCategory
	}

	// LIKE is case-insensitive for ASCII in SQLite; LOWER on both sides
	// keeps the behavior explicit.
	return r.query(ctx,
		`SELECT `+bugColumns+` FROM bugs WHERE LOWER(`+column+`) LIKE '%' || LOWER(?) || '%' ORDER BY id`,
		keyword)
}

func (r *BugRepository) SearchDateCreated(ctx context.Context, ts time.Time) ([]*domain.Bug, error) {
	return r.query(ctx,
		`SELECT `+bugColumns+` FROM bugs WHERE date_created = ? ORDER BY id`,
		ts.Format(domain.DateLayout))
}

func (r *BugRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Bug, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bug query: %w", err)
	}
	defer rows.Close()

	bugs := make([]*domain.Bug, 0)
	for rows.Next() {
		bug, err := scanBug(rows.Scan)
		if err != nil {
			return nil, err
		}
		bugs = append(bugs, bug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bug rows: %w", err)
	}
	return bugs, nil
}

func scanBug(scan func(dest ...any) error) (*domain.Bug, error) {
	var b domain.Bug
	var created string
	if err := scan(&b.ID, &b.Title, &b.Description, &b.Status, &b.Priority, &created, &b.OwnerID); err != nil {
		return nil, err
	}

	ts, err := time.Parse(domain.DateLayout, created)
	if err != nil {
		return nil, fmt.Errorf("bug scan date_created %q: %w", created, err)
	}
	b.DateCreated = ts
	return &b, nil
}
