package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
	"github.com/squashd/bugtracker/internal/core/service"
)

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevoker) Revoke(ctx context.Context, tokenID string, expiresAt int64) error {
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[tokenID] = true
	return nil
}

func (s *stubRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], s.err
}

func newAuthRequest(t *testing.T, attach func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if attach != nil {
		attach(req)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestAuth_ValidCookieToken(t *testing.T) {
	sessions := service.NewSessionManager("secret", 0)
	token, minted, err := sessions.Mint(&domain.User{ID: 7})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	c, _ := newAuthRequest(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})

	var got ports.Session
	next := func(c echo.Context) error {
		got = c.Get(ContextKeySession).(ports.Session)
		return nil
	}

	if err := Auth(sessions, &stubRevoker{}, false)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if got.UserID != 7 || got.TokenID != minted.TokenID {
		t.Fatalf("unexpected session in context: %+v", got)
	}
}

func TestAuth_ValidBearerToken(t *testing.T) {
	sessions := service.NewSessionManager("secret", 0)
	token, _, err := sessions.Mint(&domain.User{ID: 7})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	c, _ := newAuthRequest(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	if err := Auth(sessions, &stubRevoker{}, false)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestAuth_MissingToken(t *testing.T) {
	sessions := service.NewSessionManager("secret", 0)

	t.Run("api gets 401", func(t *testing.T) {
		c, _ := newAuthRequest(t, nil)
		err := Auth(sessions, &stubRevoker{}, false)(failNext(t))(c)

		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 HTTPError, got %v", err)
		}
	})

	t.Run("page gets redirect", func(t *testing.T) {
		c, rec := newAuthRequest(t, nil)
		if err := Auth(sessions, &stubRevoker{}, true)(failNext(t))(c); err != nil {
			t.Fatalf("middleware: %v", err)
		}
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
			t.Fatalf("expected redirect to /login, got %q", loc)
		}
	})
}

func TestAuth_InvalidToken(t *testing.T) {
	sessions := service.NewSessionManager("secret", 0)
	forged, _, err := service.NewSessionManager("other-secret", 0).Mint(&domain.User{ID: 7})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": forged,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newAuthRequest(t, func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
			})
			err := Auth(sessions, &stubRevoker{}, false)(failNext(t))(c)

			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	sessions := service.NewSessionManager("secret", 0)
	token, minted, err := sessions.Mint(&domain.User{ID: 7})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	revoker := &stubRevoker{revoked: map[string]bool{minted.TokenID: true}}
	c, _ := newAuthRequest(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})

	err = Auth(sessions, revoker, false)(failNext(t))(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func failNext(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("next handler must not run")
		return nil
	}
}
