package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/service"
	"taskhub/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deletion always goes through a yes/no
// gate; the request is never issued without confirmation.
type RmCmd struct {
	yes bool
	in  io.Reader
}

// SetInput sets the confirmation input source (for testing).
func (c *RmCmd) SetInput(in io.Reader) {
	c.in = in
}

// SetYes pre-confirms the deletion (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskhub rm [--yes] <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	confirm := func() bool { return true }
	if !c.yes {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)
		confirm = func() bool {
			fmt.Fprintf(out, "delete task %d permanently? [y/N] ", id)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return false
			}
			answer := strings.ToLower(strings.TrimSpace(line))
			return answer == "y" || answer == "yes"
		}
	}

	syncer := tasklist.New(svc, nil)
	deleted, err := syncer.Delete(ctx, id, confirm)
	if err != nil {
		return reportError(errOut, err)
	}
	if !deleted {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
