package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/service"
	"taskhub/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the stored profile, refreshing it from the backend when
// the local copy is missing.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskhub whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := session.NewFileStore(cfg.TokenPath(), cfg.UserPath())

	user, err := store.User()
	if err == nil && user != nil && user.Email != "" {
		fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
		return exitcode.Success
	}

	profile, err := svc.Profile(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	_ = store.SetUser(&profile) // cache for next time
	fmt.Fprintf(out, "%s <%s>\n", profile.Name, profile.Email)
	return exitcode.Success
}
