package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const (
	flashCookie     = "flash"
	flashKindCookie = "flash_kind"
)

// Flash is a one-shot message rendered on the next page view, tagged with a
// display kind ("success" or "danger").
type Flash struct {
	Message string
	Kind    string
}

// setFlash stores a one-shot message in short-lived cookies.
func setFlash(c echo.Context, message, kind string) {
	c.SetCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape(message), Path: "/", MaxAge: 60})
	c.SetCookie(&http.Cookie{Name: flashKindCookie, Value: kind, Path: "/", MaxAge: 60})
}

// popFlash retrieves and clears the pending flash message, if any.
func popFlash(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		message = cookie.Value
	}

	kind := "success"
	if kc, err := c.Cookie(flashKindCookie); err == nil && kc.Value != "" {
		kind = kc.Value
	}

	c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	c.SetCookie(&http.Cookie{Name: flashKindCookie, Value: "", Path: "/", MaxAge: -1})

	return &Flash{Message: message, Kind: kind}
}
