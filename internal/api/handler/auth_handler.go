package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/squashd/bugtracker/internal/api/metrics"
	"github.com/squashd/bugtracker/internal/api/middleware"
	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
)

// AuthHandler serves the account routes: login/logout, sign-up, account
// settings mutations and the two-step account deletion.
type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]any{"Flash": popFlash(c)})
}

// SignUpPage renders the registration form.
func (h *AuthHandler) SignUpPage(c echo.Context) error {
	return c.Render(http.StatusOK, "sign_up.html", map[string]any{"Flash": popFlash(c)})
}

// Login authenticates a user and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		if wantsJSON(c) {
			return err
		}
		setFlash(c, userMessage(err), "danger")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setSessionCookie(c, token)

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the current session. The token is revoked server-side, so
// clearing the cookie is a courtesy, not the mechanism.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), session); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// SignUp registers a new account and logs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, token, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:     req.Email,
		Username:  req.Username,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		if wantsJSON(c) {
			return err
		}
		setFlash(c, userMessage(err), "danger")
		return c.Redirect(http.StatusSeeOther, "/sign-up")
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	h.setSessionCookie(c, token)

	if wantsJSON(c) {
		return c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
	}
	setFlash(c, "Account created!", "success")
	return c.Redirect(http.StatusSeeOther, "/")
}

// AccountSettings renders the account settings page.
func (h *AuthHandler) AccountSettings(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), session)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "account_settings.html", map[string]any{
		"User":  user,
		"Flash": popFlash(c),
	})
}

// UpdateUsername changes the session user's display name.
//
// @Summary      Update username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUsernameRequest  true  "New username"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /update-username [post]
func (h *AuthHandler) UpdateUsername(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateUsernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.UpdateUsername(c.Request().Context(), session, req.NewUsername); err != nil {
		if wantsJSON(c) {
			return err
		}
		setFlash(c, userMessage(err), "danger")
		return c.Redirect(http.StatusSeeOther, "/account-settings")
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, messageResponse{Message: "username updated"})
	}
	setFlash(c, "Username updated successfully!", "success")
	return c.Redirect(http.StatusSeeOther, "/account-settings")
}

// UpdatePassword re-hashes and persists a new credential after verifying
// the old one.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Password change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /update-password [post]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.authService.UpdatePassword(c.Request().Context(), session, ports.UpdatePasswordInput{
		OldPassword:  req.OldPassword,
		NewPassword:  req.NewPassword,
		NewPassword2: req.NewPassword2,
	})
	if err != nil {
		if wantsJSON(c) {
			return err
		}
		setFlash(c, userMessage(err), "danger")
		return c.Redirect(http.StatusSeeOther, "/account-settings")
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
	}
	setFlash(c, "Password updated successfully!", "success")
	return c.Redirect(http.StatusSeeOther, "/account-settings")
}

// DeleteAccountPage is step one of the two-step deletion protocol: it only
// renders the confirmation page. No state changes here; the destructive
// action requires the separate /confirm-delete request.
func (h *AuthHandler) DeleteAccountPage(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), session)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "delete_account.html", map[string]any{"User": user})
}

// ConfirmDelete is step two: cascade-delete the account and its bugs, then
// end the session.
//
// @Summary      Confirm account deletion
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /confirm-delete [post]
func (h *AuthHandler) ConfirmDelete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteAccount(c.Request().Context(), session); err != nil {
		if wantsJSON(c) {
			return err
		}
		setFlash(c, "Account deletion failed, nothing was changed.", "danger")
		return c.Redirect(http.StatusSeeOther, "/account-settings")
	}

	metrics.AccountDeletionsTotal.Inc()
	h.clearSessionCookie(c)

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
	}
	setFlash(c, "Your account has been deleted.", "success")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

// userMessage maps a domain error to the flash copy shown on page flows.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "Email already exists."
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Email must be at least 10 characters and contain '@'."
	case errors.Is(err, domain.ErrInvalidUsername):
		return "Username must be at least 3 characters."
	case errors.Is(err, domain.ErrWeakPassword):
		return "Password must be at least 6 characters long and contain at least one special character."
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "Passwords don't match."
	case errors.Is(err, domain.ErrUserNotFound):
		return "User does not exist."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Incorrect password, try again."
	case errors.Is(err, domain.ErrWrongOldPassword):
		return "Old password is incorrect."
	default:
		return "Something went wrong, please try again."
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}

func signupResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, domain.ErrInvalidUsername):
		return "invalid_username"
	case errors.Is(err, domain.ErrWeakPassword):
		return "weak_password"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	default:
		return "error"
	}
}
