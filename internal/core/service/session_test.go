package service

import (
	"testing"
	"time"

	"github.com/squashd/bugtracker/internal/core/domain"
)

func TestSessionManager_MintParse(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	token, session, err := m.Mint(&domain.User{ID: 42})
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if session.UserID != 42 || session.TokenID == "" {
		t.Fatalf("unexpected session: %+v", session)
	}

	parsed, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if parsed.UserID != 42 {
		t.Fatalf("expected user 42, got %d", parsed.UserID)
	}
	if parsed.TokenID != session.TokenID {
		t.Fatalf("token id mismatch: %s vs %s", parsed.TokenID, session.TokenID)
	}
	if parsed.ExpiresAt != session.ExpiresAt {
		t.Fatalf("expiry mismatch: %d vs %d", parsed.ExpiresAt, session.ExpiresAt)
	}
}

func TestSessionManager_Parse_WrongSecret(t *testing.T) {
	token, _, err := NewSessionManager("one", time.Hour).Mint(&domain.User{ID: 1})
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	if _, err := NewSessionManager("two", time.Hour).Parse(token); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSessionManager_Parse_Garbage(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(token); err != domain.ErrNotAuthenticated {
			t.Fatalf("Parse(%q): expected ErrNotAuthenticated, got %v", token, err)
		}
	}
}

func TestSessionManager_Parse_Expired(t *testing.T) {
	m := &SessionManager{secret: []byte("secret"), ttl: -time.Minute}
	token, _, err := m.Mint(&domain.User{ID: 1})
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if _, err := m.Parse(token); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated for expired token, got %v", err)
	}
}

func TestSessionManager_DefaultTTL(t *testing.T) {
	if got := NewSessionManager("secret", 0).TTL(); got != sessionTTL {
		t.Fatalf("expected default TTL %v, got %v", sessionTTL, got)
	}
}
