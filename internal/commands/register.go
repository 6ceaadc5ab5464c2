package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
	in       io.Reader
}

// SetInput sets the prompt input source (for testing).
func (c *RegisterCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string {
	return "taskhub register [--name <name>] [--email <email>] [--password <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	prompts := bufio.NewReader(in)

	name, err := promptIfEmpty(prompts, out, "name: ", c.name)
	if err != nil || name == "" {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}
	email, err := promptIfEmpty(prompts, out, "email: ", c.email)
	if err != nil || email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	password, err := promptIfEmpty(prompts, out, "password: ", c.password)
	if err != nil || password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	sess, err := svc.Register(ctx, name, email, password)
	if err != nil {
		return reportError(errOut, err)
	}

	if code := storeSession(cfg, sess, errOut); code != exitcode.Success {
		return code
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "registered as %s\n", sess.User.Email)
	}
	return exitcode.Success
}
