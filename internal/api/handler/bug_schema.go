package handler

import "github.com/squashd/bugtracker/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses (rendered by the central error handler; declared here for the
// API docs).
type errorResponse struct {
	Error string `json:"error"`
}

// bugRequest carries the four caller-supplied bug fields for create and
// update. Missing fields fail validation up front instead of surfacing as
// lookup faults deeper down.
type bugRequest struct {
	Title       string `json:"title"       form:"title"       validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Status      string `json:"status"      form:"status"      validate:"required"`
	Priority    string `json:"priority"    form:"priority"    validate:"required"`
}

// bugResponse is the wire shape of a bug; date_created is formatted
// YYYY-MM-DD HH:MM:SS to match the search keyword format.
type bugResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DateCreated string `json:"date_created"`
}

type createBugResponse struct {
	Message string `json:"message"`
	BugID   int64  `json:"bug_id"`
}

func toBugResponse(b *domain.Bug) bugResponse {
	return bugResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		Priority:    b.Priority,
		DateCreated: b.DateCreated.Format(domain.DateLayout),
	}
}

func toBugResponses(bugs []*domain.Bug) []bugResponse {
	out := make([]bugResponse, 0, len(bugs))
	for _, b := range bugs {
		out = append(out, toBugResponse(b))
	}
	return out
}
