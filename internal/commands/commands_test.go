package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"taskhub/internal/commands"
	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/httpclient"
	"taskhub/internal/service"
	"taskhub/internal/session"
	"taskhub/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:8000/api",
		Timeout: config.DefaultTimeout,
	}
}

func runCommand(t *testing.T, cmd commands.Command, cfg *config.Config, svc service.Service, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCommand(t, &commands.VersionCmd{}, testConfig(t), nil)
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if want := "taskhub " + commands.Version + "\n"; out != want {
		t.Errorf("output %q, want %q", out, want)
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	code, out, _ := runCommand(t, &commands.HelpCmd{}, testConfig(t), nil)
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	for _, name := range []string{"list", "show", "add", "done", "edit", "rm", "login", "register", "logout", "whoami", "version"} {
		if !strings.Contains(out, "taskhub "+name) {
			t.Errorf("help output missing command %q", name)
		}
	}
}

func TestListPrintsRows(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("write report", service.PriorityHigh)
	svc.AddTask("buy milk", service.PriorityLow)

	code, out, errOut := runCommand(t, &commands.ListCmd{}, testConfig(t), svc)
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "write report") || !strings.Contains(out, "buy milk") {
		t.Errorf("rows missing from output:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	code, out, _ := runCommand(t, &commands.ListCmd{}, testConfig(t), testutil.NewFakeService())
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "no tasks found") {
		t.Errorf("expected empty-list message, got %q", out)
	}
}

func TestListShowsReminderBanner(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.DueSoon = []service.Task{
		{ID: 1, Title: "pay rent", Deadline: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	code, out, _ := runCommand(t, &commands.ListCmd{}, testConfig(t), svc)
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "Reminder: you have 1 task(s) due within 1 day") {
		t.Errorf("banner missing:\n%s", out)
	}
	if !strings.Contains(out, "pay rent") {
		t.Errorf("reminder row missing:\n%s", out)
	}
}

func TestListReminderFailureIsInvisible(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RemindersErr = errors.New("reminder backend down")
	svc.AddTask("one", service.PriorityLow)

	code, out, errOut := runCommand(t, &commands.ListCmd{}, testConfig(t), svc)
	if code != exitcode.Success {
		t.Fatalf("a failed reminder query must not fail the list, got %d", code)
	}
	if strings.Contains(out, "Reminder") || strings.Contains(errOut, "reminder backend down") {
		t.Errorf("reminder failure leaked to the user:\nout=%q\nerr=%q", out, errOut)
	}
}

func TestListPassesFilterToBackend(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.ListCmd{}
	cmd.SetFilterFlags("todo", "High", "2025-09-01", "2025-09-30", "desc")

	code, _, errOut := runCommand(t, cmd, testConfig(t), svc)
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	f := svc.LastFilter
	if f.Status != service.StatusTodo || f.Priority != service.PriorityHigh || f.SortOrder != service.SortDesc {
		t.Errorf("filter mismatch: %+v", f)
	}
	if got := f.DeadlineFrom.Format(service.DateFormat); got != "2025-09-01" {
		t.Errorf("from bound %q", got)
	}
	if got := f.DeadlineTo.Format(service.DateFormat); got != "2025-09-30" {
		t.Errorf("to bound %q", got)
	}
}

func TestListRejectsBadFilterValues(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.ListCmd{}
	cmd.SetFilterFlags("", "urgent", "", "", "")

	code, _, errOut := runCommand(t, cmd, testConfig(t), svc)
	if code != exitcode.UserError {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(errOut, "invalid priority") {
		t.Errorf("stderr %q", errOut)
	}
	if svc.TasksCalls != 0 {
		t.Error("backend must not be called with an invalid filter")
	}
}

func TestListBackendErrorExitCode(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.TasksErr = errors.New("connection refused")

	code, _, errOut := runCommand(t, &commands.ListCmd{}, testConfig(t), svc)
	if code != exitcode.BackendError {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(errOut, "backend error") {
		t.Errorf("stderr %q", errOut)
	}
}

func TestAddCreatesTask(t *testing.T) {
	svc := testutil.NewFakeService()
	var created service.Draft
	svc.CreateFn = func(ctx context.Context, d service.Draft) error {
		created = d
		return nil
	}
	cmd := &commands.AddCmd{}
	cmd.SetFlags("the details", "high", "2025-10-05")

	code, out, errOut := runCommand(t, cmd, testConfig(t), svc, "buy", "milk")
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("output %q", out)
	}
	if created.Title != "buy milk" {
		t.Errorf("title %q", created.Title)
	}
	if created.Description != "the details" || created.Priority != service.PriorityHigh {
		t.Errorf("draft mismatch: %+v", created)
	}
	if created.Status != service.StatusTodo {
		t.Errorf("new tasks must start as todo, got %q", created.Status)
	}
	if got := created.Deadline.Format(service.DateFormat); got != "2025-10-05" {
		t.Errorf("deadline %q", got)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	cmd := &commands.AddCmd{}
	cmd.SetFlags("", "medium", "")
	code, _, errOut := runCommand(t, cmd, testConfig(t), testutil.NewFakeService())
	if code != exitcode.UserError {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(errOut, "title required") {
		t.Errorf("stderr %q", errOut)
	}
}

func TestAddValidationErrorFromBackend(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = &httpclient.Error{
		Kind:    httpclient.KindValidation,
		Status:  422,
		Message: "invalid",
		Fields:  map[string]string{"deadline_date": "must be a future date"},
	}
	cmd := &commands.AddCmd{}
	cmd.SetFlags("", "medium", "")

	code, _, errOut := runCommand(t, cmd, testConfig(t), svc, "task")
	if code != exitcode.UserError {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(errOut, "must be a future date") {
		t.Errorf("field error missing from stderr: %q", errOut)
	}
}

func TestDone(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddTask("one", service.PriorityLow)

	code, _, errOut := runCommand(t, &commands.DoneCmd{}, testConfig(t), svc, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	task, err := svc.Task(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if !task.Completed {
		t.Error("task not completed")
	}
}

func TestDoneRejectsBadID(t *testing.T) {
	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"-3"}, {"1", "2"}} {
		code, _, _ := runCommand(t, &commands.DoneCmd{}, testConfig(t), testutil.NewFakeService(), args...)
		if code != exitcode.UserError {
			t.Errorf("args %v: exit code %d", args, code)
		}
	}
}

func TestRmDeclined(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddTask("keep me", service.PriorityLow)
	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("n\n"))

	code, out, _ := runCommand(t, cmd, testConfig(t), svc, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "cancelled") {
		t.Errorf("output %q", out)
	}
	if _, err := svc.Task(context.Background(), id); err != nil {
		t.Error("declined delete removed the task")
	}
}

func TestRmConfirmed(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.AddTask("doomed", service.PriorityLow)
	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("y\n"))

	code, out, _ := runCommand(t, cmd, testConfig(t), svc, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "delete task 1 permanently?") {
		t.Errorf("prompt missing from output %q", out)
	}
	if _, err := svc.Task(context.Background(), id); err == nil {
		t.Error("task still present after confirmed delete")
	}
}

func TestRmYesSkipsPrompt(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("doomed", service.PriorityLow)
	cmd := &commands.RmCmd{}
	cmd.SetYes(true)

	code, out, _ := runCommand(t, cmd, testConfig(t), svc, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if strings.Contains(out, "permanently?") {
		t.Errorf("prompt shown despite --yes: %q", out)
	}
}

func TestEditSendsOnlyGivenFields(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("old title", service.PriorityLow)
	cmd := &commands.EditCmd{}
	cmd.SetFlags("", "done", "", "")

	code, _, errOut := runCommand(t, cmd, testConfig(t), svc, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	task, _ := svc.Task(context.Background(), 1)
	if !task.Completed {
		t.Error("status patch not applied")
	}
	if task.Title != "old title" {
		t.Errorf("title changed without being patched: %q", task.Title)
	}
}

func TestEditNothingToUpdate(t *testing.T) {
	cmd := &commands.EditCmd{}
	code, _, errOut := runCommand(t, cmd, testConfig(t), testutil.NewFakeService(), "1")
	if code != exitcode.UserError {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(errOut, "nothing to update") {
		t.Errorf("stderr %q", errOut)
	}
}

func TestShow(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("the task", service.PriorityHigh)

	code, out, errOut := runCommand(t, &commands.ShowCmd{}, testConfig(t), svc, "1")
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "the task") || !strings.Contains(out, "high") {
		t.Errorf("detail output incomplete:\n%s", out)
	}
}

func TestLoginStoresSession(t *testing.T) {
	cfg := testConfig(t)
	svc := testutil.NewFakeService()
	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("dina@example.com\nhunter2\n"))

	code, out, errOut := runCommand(t, cmd, cfg, svc)
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "logged in as dina@example.com") {
		t.Errorf("output %q", out)
	}

	store := session.NewFileStore(cfg.TokenPath(), cfg.UserPath())
	tok, err := store.Token()
	if err != nil || tok == nil {
		t.Fatalf("token not stored: %v", err)
	}
	if tok.AccessToken != "fake-access" || tok.RefreshToken != "fake-refresh" {
		t.Errorf("stored token mismatch: %+v", tok)
	}
	user, err := store.User()
	if err != nil || user == nil || user.Email != "dina@example.com" {
		t.Errorf("stored user mismatch: %+v, %v", user, err)
	}
}

func TestLoginFailure(t *testing.T) {
	cfg := testConfig(t)
	svc := testutil.NewFakeService()
	svc.LoginErr = &httpclient.Error{Kind: httpclient.KindAuth, Status: 401, Message: "invalid credentials"}
	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("dina@example.com\nwrong\n"))

	code, _, errOut := runCommand(t, cmd, cfg, svc)
	if code != exitcode.AuthError {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(errOut, "login failed") {
		t.Errorf("stderr %q", errOut)
	}
	if cfg.HasToken() {
		t.Error("failed login must not store a token")
	}
}

func TestRegisterStoresSession(t *testing.T) {
	cfg := testConfig(t)
	cmd := &commands.RegisterCmd{}
	cmd.SetInput(strings.NewReader("Dina\ndina@example.com\nhunter2\n"))

	code, out, errOut := runCommand(t, cmd, cfg, testutil.NewFakeService())
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "registered as dina@example.com") {
		t.Errorf("output %q", out)
	}
	if !cfg.HasToken() {
		t.Error("registration must store the session")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	store := session.NewFileStore(cfg.TokenPath(), cfg.UserPath())
	if err := store.SetToken(&oauth2.Token{AccessToken: "A1", RefreshToken: "R1"}); err != nil {
		t.Fatal(err)
	}

	code, _, errOut := runCommand(t, &commands.LogoutCmd{}, cfg, testutil.NewFakeService())
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if cfg.HasToken() {
		t.Error("token survived logout")
	}
}

func TestLogoutWhenNotLoggedIn(t *testing.T) {
	cfg := testConfig(t)
	code, out, _ := runCommand(t, &commands.LogoutCmd{}, cfg, testutil.NewFakeService())
	if code != exitcode.Success {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out, "not logged in") {
		t.Errorf("output %q", out)
	}
}

func TestWhoamiUsesStoredProfile(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	store := session.NewFileStore(cfg.TokenPath(), cfg.UserPath())
	if err := store.SetUser(&service.User{ID: 1, Name: "Dina", Email: "dina@example.com"}); err != nil {
		t.Fatal(err)
	}

	svc := testutil.NewFakeService()
	svc.ProfileErr = errors.New("must not be called")
	code, out, errOut := runCommand(t, &commands.WhoamiCmd{}, cfg, svc)
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "Dina <dina@example.com>") {
		t.Errorf("output %q", out)
	}
}

func TestWhoamiFallsBackToBackend(t *testing.T) {
	cfg := testConfig(t)
	code, out, errOut := runCommand(t, &commands.WhoamiCmd{}, cfg, testutil.NewFakeService())
	if code != exitcode.Success {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "Test User <test@example.com>") {
		t.Errorf("output %q", out)
	}
}
