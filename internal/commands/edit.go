package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only fields given as flags are sent;
// the rest of the record is untouched.
type EditCmd struct {
	title    string
	status   string
	priority string
	due      string

	titleSet bool
}

// SetFlags sets the flag values (for testing).
func (c *EditCmd) SetFlags(title, status, priority, due string) {
	c.title, c.status, c.priority, c.due = title, status, priority, due
	c.titleSet = title != ""
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Update a task" }
func (c *EditCmd) Usage() string {
	return "taskhub edit [--title <text>] [--status todo|done] [--priority low|medium|high] [--due <date>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title = v
		c.titleSet = true
		return nil
	})
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var patch service.Patch
	if c.titleSet {
		title := c.title
		patch.Title = &title
	}
	if c.status != "" {
		status, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		patch.Status = &status
	}
	if c.priority != "" {
		priority, err := service.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		patch.Priority = &priority
	}
	if c.due != "" {
		due, err := parseDateFlag(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		patch.Deadline = &due
	}

	if patch.Title == nil && patch.Status == nil && patch.Priority == nil && patch.Deadline == nil {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	if err := svc.Update(ctx, id, patch); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
