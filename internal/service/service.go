// Package service defines the backend-agnostic interface for TaskHub operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All REST calls go through this interface.
// Commands never import the HTTP client directly.
type Service interface {
	// Login authenticates with email and password.
	Login(ctx context.Context, email, password string) (Session, error)

	// Register creates an account and signs in.
	Register(ctx context.Context, name, email, password string) (Session, error)

	// Logout invalidates the server-side session. Best effort; local
	// credentials are cleared regardless.
	Logout(ctx context.Context) error

	// Profile returns the authenticated user's profile.
	Profile(ctx context.Context) (User, error)

	// Tasks returns the task list matching the filter.
	// Absent filter fields are omitted from the request.
	Tasks(ctx context.Context, f Filter) ([]Task, error)

	// Task returns a single task by id.
	Task(ctx context.Context, id int64) (Task, error)

	// Create submits a complete draft.
	Create(ctx context.Context, d Draft) error

	// Update applies a partial update to a task.
	Update(ctx context.Context, id int64, p Patch) error

	// Complete marks a task as completed.
	Complete(ctx context.Context, id int64) error

	// Delete removes a task.
	Delete(ctx context.Context, id int64) error

	// Reminders returns tasks due within one calendar day.
	Reminders(ctx context.Context) ([]Task, error)
}
