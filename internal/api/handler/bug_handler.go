package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/squashd/bugtracker/internal/api/metrics"
	"github.com/squashd/bugtracker/internal/core/domain"
	"github.com/squashd/bugtracker/internal/core/ports"
)

// BugHandler serves the bug list page and the bug JSON API.
type BugHandler struct {
	bugService  ports.BugService
	authService ports.AuthService
}

func NewBugHandler(bugService ports.BugService, authService ports.AuthService) *BugHandler {
	return &BugHandler{bugService: bugService, authService: authService}
}

// Index renders the bug list page, scoped to the session user's own bugs.
func (h *BugHandler) Index(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), session)
	if err != nil {
		return err
	}

	bugs, err := h.bugService.ListByOwner(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index.html", map[string]any{
		"User":  user,
		"Bugs":  toBugResponses(bugs),
		"Flash": popFlash(c),
	})
}

// ListJSON handles GET /json. The listing is intentionally unscoped — every
// user's bugs are returned — and kept as a capability distinct from the
// owner-scoped page view.
//
// @Summary      List all bugs
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bugResponse
// @Failure      401  {object}  errorResponse
// @Router       /json [get]
func (h *BugHandler) ListJSON(c echo.Context) error {
	bugs, err := h.bugService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBugResponses(bugs))
}

// Create handles POST /bugs.
//
// @Summary      Create a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bugRequest  true  "Bug details"
// @Success      201   {object}  createBugResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /bugs [post]
func (h *BugHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req bugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bug, err := h.bugService.Create(c.Request().Context(), session.UserID, ports.BugInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}

	metrics.BugsCreatedTotal.WithLabelValues(bug.Priority).Inc()
	return c.JSON(http.StatusCreated, createBugResponse{Message: "Bug created successfully", BugID: bug.ID})
}

// Update handles PUT /bugs/:id. All four mutable fields are overwritten.
//
// @Summary      Update a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Bug ID"
// @Param        body  body      bugRequest  true  "New field values"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bugs/{id} [put]
func (h *BugHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	bugID, err := parseBugID(c)
	if err != nil {
		return err
	}

	var req bugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.bugService.Update(c.Request().Context(), session.UserID, bugID, ports.BugInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Bug updated successfully"})
}

// Delete handles DELETE /bugs/:id.
//
// @Summary      Delete a bug
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Bug ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bugs/{id} [delete]
func (h *BugHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	bugID, err := parseBugID(c)
	if err != nil {
		return err
	}

	if err := h.bugService.Delete(c.Request().Context(), session.UserID, bugID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Bug deleted successfully"})
}

// Search handles GET /search?keyword=&category=. The search is global, not
// owner-scoped.
//
// @Summary      Search bugs
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        keyword   query     string  true  "Search keyword"
// @Param        category  query     string  true  "title, status, priority or date_created"
// @Success      200       {array}   bugResponse
// @Failure      400       {object}  errorResponse
// @Router       /search [get]
func (h *BugHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	category := ports.SearchCategory(c.QueryParam("category"))

	bugs, err := h.bugService.Search(c.Request().Context(), keyword, category)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.SearchesTotal.WithLabelValues(string(category)).Inc()
	return c.JSON(http.StatusOK, toBugResponses(bugs))
}

func parseBugID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid bug id")
	}
	return id, nil
}
