package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"taskhub/internal/exitcode"
	"taskhub/internal/httpclient"
	"taskhub/internal/tasklist"
)

// reportError maps a backend failure to the exit code and stderr line the
// calling command returns. Every path resets state before reaching here;
// nothing is left "in progress".
func reportError(errOut io.Writer, err error) int {
	switch {
	case httpclient.IsAuth(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case httpclient.IsNotFound(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case httpclient.IsKind(err, httpclient.KindValidation):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, tasklist.ErrPending), errors.Is(err, tasklist.ErrBusy):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// parseTaskID parses the single positional task id argument.
func parseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("task id required")
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}
