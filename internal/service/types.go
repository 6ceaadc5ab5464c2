// Package service defines the backend-agnostic interface for TaskHub operations.
package service

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the calendar format used everywhere a date crosses the wire.
const DateFormat = "2006-01-02"

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes user input to a Priority.
// Input is case-insensitive ("High" -> "high").
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("invalid priority: %s", s)
	}
}

// Status is a task completion filter value.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// ParseStatus normalizes user input to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusTodo, StatusDone:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status: %s", s)
	}
}

// SortOrder is the deadline sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder normalizes user input to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s", s)
	}
}

// Task represents a single task record.
type Task struct {
	ID             int64
	Title          string
	Description    string
	Completed      bool
	Priority       Priority
	Deadline       time.Time // date precision only
	NeedsAttention bool
}

// User is the authenticated user's profile.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the result of a successful login or registration.
// RefreshToken may be empty when the backend issues only an access token.
type Session struct {
	Token        string
	RefreshToken string
	User         User
}

// Filter holds optional task list criteria. Zero values mean "absent" and
// are omitted from the outbound query.
type Filter struct {
	Status       Status
	Priority     Priority
	DeadlineFrom time.Time
	DeadlineTo   time.Time
	SortOrder    SortOrder
}

// IsZero reports whether no criteria are set.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.Priority == "" &&
		f.DeadlineFrom.IsZero() && f.DeadlineTo.IsZero() && f.SortOrder == ""
}

// Draft is a complete new-task submission. Validation is the caller's
// responsibility; the backend reports field errors.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Deadline    time.Time
}

// Patch carries a partial task update. Nil fields are left untouched.
type Patch struct {
	Title    *string
	Status   *Status
	Priority *Priority
	Deadline *time.Time
}
