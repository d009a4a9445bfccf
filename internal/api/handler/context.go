package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/squashd/bugtracker/internal/api/middleware"
	"github.com/squashd/bugtracker/internal/core/ports"
)

// ctxSession extracts the session injected by the Auth middleware and
// fast-fails before any service call: a zero user ID means the middleware
// did not run on this route, which is a wiring bug, not a user error.
func ctxSession(c echo.Context) (ports.Session, error) {
	session, _ := c.Get(middleware.ContextKeySession).(ports.Session)
	if session.UserID == 0 {
		return ports.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}

// wantsJSON reports whether the request came from the JSON API rather than
// a rendered form: form flows redirect with a flash, API flows get JSON.
// Besides a JSON body, a Bearer token or an explicit JSON Accept header also
// marks an API client, so bodyless calls (logout, confirm-delete) do not get
// bounced through the page redirects.
func wantsJSON(c echo.Context) bool {
	h := c.Request().Header
	if strings.HasPrefix(h.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	if strings.Contains(h.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return true
	}
	parts := strings.SplitN(h.Get(echo.HeaderAuthorization), " ", 2)
	return len(parts) == 2 && strings.EqualFold(parts[0], "bearer")
}
