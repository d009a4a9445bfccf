package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/squashd/bugtracker/internal/core/ports"
	"github.com/squashd/bugtracker/internal/core/service"
)

// SessionCookie is the cookie carrying the signed session token for page
// flows. The JSON API may instead send the same token as a Bearer header.
const SessionCookie = "session"

// ContextKeySession is the echo context key under which the authenticated
// ports.Session is stored.
const ContextKeySession = "session"

// Auth validates the session token and injects the resulting ports.Session
// into the request context. Anonymous or revoked sessions are rejected:
// page flows redirect to /login, API flows get a 401 JSON envelope.
func Auth(sessions *service.SessionManager, revoker ports.SessionRevoker, redirectToLogin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return reject(c, redirectToLogin)
			}

			session, err := sessions.Parse(token)
			if err != nil {
				return reject(c, redirectToLogin)
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), session.TokenID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session check failed")
			}
			if revoked {
				return reject(c, redirectToLogin)
			}

			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func reject(c echo.Context, redirectToLogin bool) error {
	if redirectToLogin {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
}
