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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskhub help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskhub                                            List open tasks (with due-soon reminders)
  taskhub list [common flags] [--status todo|done] [--priority low|medium|high]
               [--from <YYYY-MM-DD>] [--to <YYYY-MM-DD>] [--sort asc|desc]
  taskhub show [common flags] <id>
  taskhub add [common flags] [--desc <text>] [--priority low|medium|high] [--due <YYYY-MM-DD>] <title...>
  taskhub done [common flags] <id>
  taskhub edit [common flags] [--title <text>] [--status todo|done]
               [--priority low|medium|high] [--due <YYYY-MM-DD>] <id>
  taskhub rm [common flags] [--yes] <id>
  taskhub login [common flags] [--email <email>] [--password <password>]
  taskhub register [common flags] [--name <name>] [--email <email>] [--password <password>]
  taskhub logout [common flags]
  taskhub whoami [common flags]
  taskhub help
  taskhub version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
