package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/squashd/bugtracker/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, resp
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrDuplicateEmail, http.StatusConflict, "Email already exists."},
		{domain.ErrInvalidEmail, http.StatusBadRequest, "Email must be at least 10 characters and contain '@'."},
		{domain.ErrInvalidUsername, http.StatusBadRequest, "Username must be at least 3 characters."},
		{domain.ErrWeakPassword, http.StatusBadRequest, "Password must be at least 6 characters long and contain at least one special character."},
		{domain.ErrPasswordMismatch, http.StatusBadRequest, "Passwords don't match."},
		{domain.ErrUserNotFound, http.StatusNotFound, "User does not exist."},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect password, try again."},
		{domain.ErrNotAuthenticated, http.StatusUnauthorized, "not authenticated"},
		{domain.ErrWrongOldPassword, http.StatusBadRequest, "Old password is incorrect."},
		{domain.ErrValidation, http.StatusBadRequest, "title, description, status and priority are required"},
		{domain.ErrBugNotFound, http.StatusNotFound, "bug not found"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrInvalidCategory, http.StatusBadRequest, "Invalid category"},
		{domain.ErrInvalidDateFormat, http.StatusBadRequest, "Invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, resp := handleError(t, tt.err)
			if code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
			if resp.Error != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("store layer context"), domain.ErrBugNotFound)

	code, resp := handleError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped sentinel, got %d", code)
	}
	if resp.Error != "bug not found" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Error != "invalid payload" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, resp := handleError(t, errors.New("sqlite: disk I/O error"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", resp.Error)
	}
}
