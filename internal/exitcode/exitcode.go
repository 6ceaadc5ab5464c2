// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad id, not confirmed).
	UserError = 1

	// AuthError indicates a session/credentials error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
