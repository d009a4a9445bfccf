package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
)

type stubBugRepo struct {
	bugs   map[int64]*domain.Bug
	nextID int64
}

func newStubBugRepo() *stubBugRepo {
	return &stubBugRepo{bugs: make(map[int64]*domain.Bug), nextID: 1}
}

func cloneBug(b *domain.Bug) *domain.Bug {
	clone := *b
	return &clone
}

func (r *stubBugRepo) Insert(_ context.Context, bug *domain.Bug) (*domain.Bug, error) {
	b := cloneBug(bug)
	b.ID = r.nextID
	r.bugs[b.ID] = b
	r.nextID++
	return cloneBug(b), nil
}

func (r *stubBugRepo) FindByID(_ context.Context, id int64) (*domain.Bug, error) {
	if b, ok := r.bugs[id]; ok {
		return cloneBug(b), nil
	}
	return nil, domain.ErrBugNotFound
}

func (r *stubBugRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Bug, error) {
	out := make([]*domain.Bug, 0)
	for id := int64(1); id < r.nextID; id++ {
		if b, ok := r.bugs[id]; ok && b.OwnerID == ownerID {
			out = append(out, cloneBug(b))
		}
	}
	return out, nil
}

func (r *stubBugRepo) ListAll(_ context.Context) ([]*domain.Bug, error) {
	out := make([]*domain.Bug, 0)
	for id := int64(1); id < r.nextID; id++ {
		if b, ok := r.bugs[id]; ok {
			out = append(out, cloneBug(b))
		}
	}
	return out, nil
}

func (r *stubBugRepo) Update(_ context.Context, id int64, title, description, status, priority string) error {
	b, ok := r.bugs[id]
	if !ok {
		return domain.ErrBugNotFound
	}
	b.Title, b.Description, b.Status, b.Priority = title, description, status, priority
	return nil
}

func (r *stubBugRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bugs[id]; !ok {
		return domain.ErrBugNotFound
	}
	delete(r.bugs, id)
	return nil
}

func (r *stubBugRepo) SearchText(_ context.Context, category ports.SearchCategory, keyword string) ([]*domain.Bug, error) {
	out := make([]*domain.Bug, 0)
	for id := int64(1); id < r.nextID; id++ {
		b, ok := r.bugs[id]
		if !ok {
			continue
		}
		var field string
		switch category {
		case ports.SearchByTitle:
			field = b.Title
		case ports.SearchByStatus:
			field = b.Status
		case ports.SearchByPriority:
			field = b.Priority
		}
		if strings.Contains(strings.ToLower(field), strings.ToLower(keyword)) {
			out = append(out, cloneBug(b))
		}
	}
	return out, nil
}

func (r *stubBugRepo) SearchDateCreated(_ context.Context, ts time.Time) ([]*domain.Bug, error) {
	out := make([]*domain.Bug, 0)
	for id := int64(1); id < r.nextID; id++ {
		if b, ok := r.bugs[id]; ok && b.DateCreated.Equal(ts) {
			out = append(out, cloneBug(b))
		}
	}
	return out, nil
}

func newBugService(repo *stubBugRepo) *BugService {
	return NewBugService(repo, zerolog.Nop())
}

func validBug() ports.BugInput {
	return ports.BugInput{Title: "Login fails", Description: "500 on submit", Status: "Open", Priority: "High"}
}

func TestBugService_Create(t *testing.T) {
	repo := newStubBugRepo()
	svc := newBugService(repo)
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	bug, err := svc.Create(context.Background(), 7, validBug())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if bug.ID == 0 {
		t.Fatalf("expected assigned bug id")
	}
	if bug.OwnerID != 7 {
		t.Fatalf("owner not taken from session: %d", bug.OwnerID)
	}
	if !bug.DateCreated.Equal(fixed) {
		t.Fatalf("date_created not set to current time: %v", bug.DateCreated)
	}
}

func TestBugService_Create_MissingFields(t *testing.T) {
	svc := newBugService(newStubBugRepo())

	inputs := []ports.BugInput{
		{Description: "d", Status: "Open", Priority: "High"},
		{Title: "t", Status: "Open", Priority: "High"},
		{Title: "t", Description: "d", Priority: "High"},
		{Title: "t", Description: "d", Status: "Open"},
	}
	for _, input := range inputs {
		if _, err := svc.Create(context.Background(), 1, input); err != domain.ErrValidation {
			t.Fatalf("expected ErrValidation for %+v, got %v", input, err)
		}
	}
}

func TestBugService_ListByOwner_Scoped(t *testing.T) {
	svc := newBugService(newStubBugRepo())

	mine, err := svc.Create(context.Background(), 1, validBug())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 2, ports.BugInput{Title: "Other", Description: "x", Status: "Open", Priority: "Low"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bugs, err := svc.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(bugs) != 1 || bugs[0].ID != mine.ID {
		t.Fatalf("expected exactly the owner's bug, got %+v", bugs)
	}

	other, err := svc.ListByOwner(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no bugs for owner 3, got %d", len(other))
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected unscoped listing of 2 bugs, got %d", len(all))
	}
}

func TestBugService_Update(t *testing.T) {
	svc := newBugService(newStubBugRepo())
	bug, err := svc.Create(context.Background(), 1, validBug())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), 1, 999, validBug()); err != domain.ErrBugNotFound {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), 2, bug.ID, validBug()); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.Update(context.Background(), 1, bug.ID, ports.BugInput{Title: "t"}); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	updated, err := svc.Update(context.Background(), 1, bug.ID, ports.BugInput{
		Title: "Login fixed", Description: "patched", Status: "Resolved", Priority: "Low",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != "Resolved" || updated.Title != "Login fixed" {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if updated.OwnerID != 1 || !updated.DateCreated.Equal(bug.DateCreated) {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
}

func TestBugService_Delete(t *testing.T) {
	svc := newBugService(newStubBugRepo())
	bug, err := svc.Create(context.Background(), 1, validBug())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), 2, bug.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, bug.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, bug.ID); err != domain.ErrBugNotFound {
		t.Fatalf("expected ErrBugNotFound after deletion, got %v", err)
	}
}

func TestBugService_Search(t *testing.T) {
	svc := newBugService(newStubBugRepo())
	if _, err := svc.Create(context.Background(), 1, ports.BugInput{Title: "Login fails", Description: "d", Status: "Open", Priority: "High"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, ports.BugInput{Title: "UI glitch", Description: "d", Status: "Resolved", Priority: "Low"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byTitle, err := svc.Search(context.Background(), "login", ports.SearchByTitle)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Title != "Login fails" {
		t.Fatalf("title search: got %+v", byTitle)
	}

	byStatus, err := svc.Search(context.Background(), "resolved", ports.SearchByStatus)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].Title != "UI glitch" {
		t.Fatalf("status search: got %+v", byStatus)
	}

	empty, err := svc.Search(context.Background(), "2099-01-01 00:00:00", ports.SearchByDateCreated)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result for unmatched date, got %d", len(empty))
	}

	if _, err := svc.Search(context.Background(), "not-a-date", ports.SearchByDateCreated); err != domain.ErrInvalidDateFormat {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
	if _, err := svc.Search(context.Background(), "x", ports.SearchCategory("owner")); err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}
