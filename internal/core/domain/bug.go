package domain

import "time"

// DateLayout is the wire format for bug timestamps, both in JSON responses
// and in date_created search keywords.
const DateLayout = "2006-01-02 15:04:05"

// Bug is a single bug report. Status and priority are free-form vocabularies
// ("Open", "In Progress", "High", ...) rather than enums; stored rows were
// never constrained and must keep loading as-is.
type Bug struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DateCreated time.Time `json:"date_created"`
	OwnerID     int64     `json:"owner_id"`
}
