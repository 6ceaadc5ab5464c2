package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/output"
	"taskhub/internal/service"
	"taskhub/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskhub` (no args) and `taskhub list` with filter flags.
type ListCmd struct {
	status   string
	priority string
	from     string
	to       string
	sort     string
}

// SetFilterFlags sets the filter flag values (for testing).
func (c *ListCmd) SetFilterFlags(status, priority, from, to, sort string) {
	c.status, c.priority, c.from, c.to, c.sort = status, priority, from, to, sort
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskhub list [--status todo|done] [--priority low|medium|high] [--from <date>] [--to <date>] [--sort asc|desc]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.from, "from", "", "")
	fs.StringVar(&c.to, "to", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := c.buildFilter()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	syncer := tasklist.New(svc, nil)

	// Best-effort due-soon check before the list loads; a failure here is
	// logged, never shown.
	if reminders := syncer.CheckReminders(ctx); len(reminders) > 0 && !cfg.Quiet {
		output.FormatReminderBanner(out, reminders)
	}

	if err := syncer.Refresh(ctx, filter); err != nil {
		return reportError(errOut, err)
	}

	tasks := syncer.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, task := range tasks {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}

// buildFilter validates the flag values into a Filter. User input like
// "High" is normalized to the lowercase wire value.
func (c *ListCmd) buildFilter() (service.Filter, error) {
	var f service.Filter
	var err error

	if c.status != "" {
		if f.Status, err = service.ParseStatus(c.status); err != nil {
			return service.Filter{}, err
		}
	}
	if c.priority != "" {
		if f.Priority, err = service.ParsePriority(c.priority); err != nil {
			return service.Filter{}, err
		}
	}
	if c.from != "" {
		if f.DeadlineFrom, err = parseDateFlag(c.from); err != nil {
			return service.Filter{}, err
		}
	}
	if c.to != "" {
		if f.DeadlineTo, err = parseDateFlag(c.to); err != nil {
			return service.Filter{}, err
		}
	}
	if c.sort != "" {
		if f.SortOrder, err = service.ParseSortOrder(c.sort); err != nil {
			return service.Filter{}, err
		}
	}
	return f, nil
}

// parseDateFlag parses a YYYY-MM-DD flag value.
func parseDateFlag(s string) (time.Time, error) {
	d, err := time.Parse(service.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date (want YYYY-MM-DD): %s", s)
	}
	return d, nil
}
