package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/service"
	"taskhub/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
	in       io.Reader
}

// SetInput sets the prompt input source (for testing).
func (c *LoginCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string     { return "taskhub login [--email <email>] [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	prompts := bufio.NewReader(in)

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

	sess, err := svc.Login(ctx, email, password)
	if err != nil {
		// A rejected login is a credentials problem, never a refresh
		// trigger; the client already guarantees that.
		fmt.Fprintf(errOut, "error: login failed: %v\n", err)
		return exitcode.AuthError
	}

	if code := storeSession(cfg, sess, errOut); code != exitcode.Success {
		return code
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", sess.User.Email)
	}
	return exitcode.Success
}

// promptIfEmpty returns the flag value, or reads one line from the prompt
// input when the flag was not given.
func promptIfEmpty(in *bufio.Reader, out io.Writer, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// storeSession persists the credential pair and profile under the config dir.
func storeSession(cfg *config.Config, sess service.Session, errOut io.Writer) int {
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	store := session.NewFileStore(cfg.TokenPath(), cfg.UserPath())
	tok := &oauth2.Token{
		AccessToken:  sess.Token,
		RefreshToken: sess.RefreshToken,
	}
	if err := store.SetToken(tok); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	if err := store.SetUser(&sess.User); err != nil {
		fmt.Fprintf(errOut, "error: failed to save profile: %v\n", err)
		return exitcode.AuthError
	}
	return exitcode.Success
}
