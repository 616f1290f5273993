package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nvinuesa/gguser/internal/execx"
	"github.com/nvinuesa/gguser/internal/selector"
	"github.com/nvinuesa/gguser/internal/testutil"
)

// cliEnv is an isolated environment: a temporary store, a working directory
// and a fake git answering every external command.
type cliEnv struct {
	storePath string
	dir       string
	git       *testutil.FakeGit
	runner    *testutil.FakeRunner
	stdin     string
}

func testEnv(t *testing.T) *cliEnv {
	t.Helper()

	tmp := t.TempDir()
	env := &cliEnv{
		storePath: filepath.Join(tmp, "config", "gguser.json"),
		dir:       filepath.Join(tmp, "work"),
		git:       testutil.NewFakeGit(),
	}
	if err := os.MkdirAll(env.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	env.runner = &testutil.FakeRunner{Handler: func(cmd execx.Command) (string, error) {
		if cmd.Name == "ssh-add" {
			return "", nil
		}
		return env.git.Handle(cmd)
	}}

	t.Setenv(envStorePath, env.storePath)
	t.Setenv(envDebug, "")
	t.Setenv(envGit, "")
	t.Setenv(envSSHAdd, "")
	t.Setenv(envKeyAgent, "")

	origRunner, origSelector, origWorkingDir := newRunner, newSelector, workingDir
	newRunner = func(logrus.FieldLogger) execx.Runner { return env.runner }
	newSelector = func(cmd *cobra.Command) profileSelector {
		return selector.NewPrompt(strings.NewReader(env.stdin), cmd.OutOrStdout())
	}
	workingDir = func() (string, error) { return env.dir, nil }
	resetFlags(rootCmd)

	t.Cleanup(func() {
		newRunner, newSelector, workingDir = origRunner, origSelector, origWorkingDir
		resetFlags(rootCmd)
	})
	return env
}

// resetFlags restores every flag of cmd and its subcommands to its default.
// Cobra keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// makeRepo turns the working directory into a git repository.
func (e *cliEnv) makeRepo(t *testing.T) {
	t.Helper()
	if err := os.Mkdir(filepath.Join(e.dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	e.git.InRepo = true
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), append([]string{}, args...), &out, &errOut)
	return out.String(), errOut.String(), code
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, code := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("gguser %s exited %d\nstdout: %s\nstderr: %s", strings.Join(args, " "), code, stdout, stderr)
	}
	return stdout
}

func TestCLI_NoArgs_PrintsUsage(t *testing.T) {
	testEnv(t)

	stdout, _, code := runCLI(t)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	for _, line := range []string{"gguser add <profile> <name> <email> [ssh_key]", "gguser select", "gguser link <profile> [directory]", "gguser unlink [directory]"} {
		if !strings.Contains(stdout, line) {
			t.Errorf("usage should contain %q:\n%s", line, stdout)
		}
	}
}

func TestCLI_Help_ListsAllCommands(t *testing.T) {
	testEnv(t)
	initHelp(rootCmd)

	stdout := mustRun(t, "--help")
	for _, name := range []string{"add", "list", "now", "remove", "select", "version"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("--help output should contain %q", name)
		}
	}
}

func TestCLI_AddThenList(t *testing.T) {
	testEnv(t)

	if got := mustRun(t, "add", "work", "Jane Doe", "jane@co.com"); got != "Added profile: work\n" {
		t.Errorf("add output = %q", got)
	}

	got := mustRun(t, "list")
	want := "Available Profiles:\n- work: Jane Doe <jane@co.com>\n"
	if got != want {
		t.Errorf("list output = %q, want %q", got, want)
	}
}

func TestCLI_ListShowsSSHKey(t *testing.T) {
	testEnv(t)
	mustRun(t, "add", "oss", "Jane", "jane@oss.org", "/keys/id_oss")

	got := mustRun(t, "list")
	if !strings.Contains(got, "- oss: Jane <jane@oss.org>\n    ssh key: /keys/id_oss\n") {
		t.Errorf("list output = %q", got)
	}
}

func TestCLI_ListEmpty(t *testing.T) {
	testEnv(t)

	got := mustRun(t, "list")
	if got != msgNoProfiles+"\n" {
		t.Errorf("list output = %q", got)
	}
}

func TestCLI_AddOverwritesInPlace(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane", "old@co.com")
	mustRun(t, "add", "oss", "Jane", "jane@oss.org")
	mustRun(t, "add", "work", "Jane Doe", "new@co.com")

	got := mustRun(t, "list")
	want := "Available Profiles:\n- work: Jane Doe <new@co.com>\n- oss: Jane <jane@oss.org>\n"
	if got != want {
		t.Errorf("list output = %q, want %q", got, want)
	}

	raw, err := os.ReadFile(env.storePath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(raw), `"work"`) != 1 {
		t.Errorf("store should hold one work profile:\n%s", raw)
	}
}

func TestCLI_AddUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"No args", []string{"add"}},
		{"Missing email", []string{"add", "work", "Jane"}},
		{"Empty name", []string{"add", "work", "", "jane@co.com"}},
		{"Too many", []string{"add", "work", "Jane", "Doe", "jane@co.com", "/keys/id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testEnv(t)

			stdout, stderr, code := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, "Usage: gguser add <profile> <name> <email> [ssh_key]") {
				t.Errorf("stderr = %q", stderr)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
		})
	}
}

func TestCLI_AddRejectsCommandName(t *testing.T) {
	testEnv(t)

	_, stderr, code := runCLI(t, "add", "list", "Jane", "jane@co.com")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "Error: invalid profile key") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCLI_Remove(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane", "jane@co.com")

	if got := mustRun(t, "remove", "work"); got != "Removed profile: work\n" {
		t.Errorf("remove output = %q", got)
	}
	if got := mustRun(t, "list"); got != msgNoProfiles+"\n" {
		t.Errorf("list after remove = %q", got)
	}

	raw, err := os.ReadFile(env.storePath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "work") {
		t.Errorf("store still holds work:\n%s", raw)
	}
}

func TestCLI_RemoveNotFound(t *testing.T) {
	for _, args := range [][]string{{"remove"}, {"remove", "ghost"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			env := testEnv(t)
			mustRun(t, "add", "work", "Jane", "jane@co.com")
			before, err := os.ReadFile(env.storePath)
			if err != nil {
				t.Fatal(err)
			}

			stdout, _, code := runCLI(t, args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != msgRemoveNotFound+"\n" {
				t.Errorf("stdout = %q", stdout)
			}

			after, err := os.ReadFile(env.storePath)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(before, after) {
				t.Error("store changed after failed remove")
			}
		})
	}
}

func TestCLI_SwitchGlobal(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane Doe", "jane@co.com")

	got := mustRun(t, "work")
	if got != "Switched to work\n" {
		t.Errorf("switch output = %q", got)
	}
	if env.git.Global["user.name"] != "Jane Doe" || env.git.Global["user.email"] != "jane@co.com" {
		t.Errorf("global config = %v", env.git.Global)
	}

	rendered := env.runner.Rendered()
	want := []string{
		`git config --global user.name "Jane Doe"`,
		`git config --global user.email jane@co.com`,
	}
	if strings.Join(rendered, "\n") != strings.Join(want, "\n") {
		t.Errorf("commands = %q, want %q", rendered, want)
	}
	for _, c := range env.runner.Calls() {
		if c.Dir != env.dir {
			t.Errorf("git ran in %q, want %q", c.Dir, env.dir)
		}
	}
}

func TestCLI_SwitchLocal(t *testing.T) {
	env := testEnv(t)
	env.makeRepo(t)
	mustRun(t, "add", "oss", "Jane", "jane@oss.org")

	mustRun(t, "oss")
	if env.git.Local["user.email"] != "jane@oss.org" {
		t.Errorf("local config = %v", env.git.Local)
	}
	if len(env.git.Global) != 0 {
		t.Errorf("global config touched: %v", env.git.Global)
	}
}

func TestCLI_SwitchQuotesVerbatim(t *testing.T) {
	env := testEnv(t)
	name := `Jane "JD" Doe`
	mustRun(t, "add", "q", name, "jd@co.com")

	mustRun(t, "q")
	if env.git.Global["user.name"] != name {
		t.Errorf("user.name = %q, want %q", env.git.Global["user.name"], name)
	}
	if args := env.runner.Calls()[0].Args; args[len(args)-1] != name {
		t.Errorf("name argument = %q", args[len(args)-1])
	}
}

func TestCLI_SwitchWithSSHKey(t *testing.T) {
	env := testEnv(t)
	key := filepath.Join(t.TempDir(), "id_work")
	if err := os.WriteFile(key, []byte("not parsed by ssh-add fake"), 0o600); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "add", "work", "Jane", "jane@co.com", key)

	got := mustRun(t, "work")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 || lines[0] != "SSH key "+key+" added" || lines[1] != "Switched to work" {
		t.Errorf("switch output = %q", got)
	}

	calls := env.runner.Calls()
	last := calls[len(calls)-1]
	if last.Name != "ssh-add" || len(last.Args) != 1 || last.Args[0] != key {
		t.Errorf("last command = %s, want ssh-add %s", last, key)
	}
}

func TestCLI_SwitchMissingSSHKey(t *testing.T) {
	env := testEnv(t)
	missing := filepath.Join(t.TempDir(), "gone")
	mustRun(t, "add", "work", "Jane", "jane@co.com", missing)

	stdout, stderr, code := runCLI(t, "work")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stdout != "Switched to work\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "SSH key not found: "+missing) {
		t.Errorf("stderr = %q", stderr)
	}
	if env.git.Global["user.name"] != "Jane" {
		t.Error("identity should be switched")
	}
	for _, c := range env.runner.Calls() {
		if c.Name == "ssh-add" {
			t.Error("ssh-add should not run for a missing key")
		}
	}
}

func TestCLI_SwitchGitFailure(t *testing.T) {
	env := testEnv(t)
	env.git.FailSet = true
	mustRun(t, "add", "work", "Jane", "jane@co.com")

	stdout, stderr, code := runCLI(t, "work")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if strings.Contains(stdout, "Switched") {
		t.Errorf("stdout = %q, should not confirm", stdout)
	}
	if !strings.HasPrefix(stderr, "Error: switching to work") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCLI_UnknownProfileIsSoft(t *testing.T) {
	for _, token := range []string{"ghost", "link", "unlink"} {
		t.Run(token, func(t *testing.T) {
			env := testEnv(t)

			stdout, _, code := runCLI(t, token)
			if code != 0 {
				t.Errorf("exit code = %d, want 0", code)
			}
			if stdout != msgUnknownProfile+"\n" {
				t.Errorf("stdout = %q", stdout)
			}
			if len(env.runner.Calls()) != 0 {
				t.Error("git should not run")
			}
		})
	}
}

func TestCLI_Now(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		env := testEnv(t)
		env.makeRepo(t)
		env.git.Local["user.name"], env.git.Local["user.email"] = "Local Jane", "l@co.com"
		env.git.Global["user.name"], env.git.Global["user.email"] = "Global Jane", "g@co.com"

		if got := mustRun(t, "now"); got != "Current Git User: Local Jane <l@co.com>\n" {
			t.Errorf("now output = %q", got)
		}
	})

	t.Run("Global fallback", func(t *testing.T) {
		env := testEnv(t)
		env.git.Global["user.name"], env.git.Global["user.email"] = "Global Jane", "g@co.com"

		if got := mustRun(t, "now"); got != "Current Git User: Global Jane <g@co.com>\n" {
			t.Errorf("now output = %q", got)
		}
	})

	t.Run("Nothing configured", func(t *testing.T) {
		testEnv(t)

		stdout, _, code := runCLI(t, "now")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if stdout != "No Git user configured in this scope.\n" {
			t.Errorf("stdout = %q", stdout)
		}
	})
}

func TestCLI_Select(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane Doe", "jane@co.com")
	mustRun(t, "add", "oss", "Jane", "jane@oss.org")
	env.stdin = "2\n"

	got := mustRun(t, "select")
	if !strings.HasPrefix(got, selectTitle+"\n") {
		t.Errorf("select should show the title:\n%s", got)
	}
	if !strings.HasSuffix(got, "Switched to oss\n") {
		t.Errorf("select output = %q", got)
	}
	if env.git.Global["user.email"] != "jane@oss.org" {
		t.Errorf("global config = %v", env.git.Global)
	}
}

func TestCLI_SelectNoProfiles(t *testing.T) {
	testEnv(t)

	stdout, _, code := runCLI(t, "select")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != msgNoProfiles+"\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCLI_SelectCancelled(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane", "jane@co.com")
	env.stdin = ""

	_, _, code := runCLI(t, "select")
	if code != 130 {
		t.Errorf("exit code = %d, want 130", code)
	}
	if len(env.runner.Calls()) != 0 {
		t.Error("git should not run after a cancelled selection")
	}
}

func TestCLI_SelectGitFailure(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane", "jane@co.com")
	env.git.FailSet = true
	env.stdin = "1\n"

	_, stderr, code := runCLI(t, "select")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCLI_CorruptStoreIsBackedUp(t *testing.T) {
	env := testEnv(t)
	if err := os.MkdirAll(filepath.Dir(env.storePath), 0o755); err != nil {
		t.Fatal(err)
	}
	garbage := []byte(`{"users": {"work": `)
	if err := os.WriteFile(env.storePath, garbage, 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runCLI(t, "list")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stdout != msgNoProfiles+"\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "Error reading config file. Resetting...") {
		t.Errorf("stderr should log the reset: %q", stderr)
	}

	backups, err := filepath.Glob(env.storePath + ".corrupt-*")
	if err != nil || len(backups) != 1 {
		t.Fatalf("backups = %v, err = %v", backups, err)
	}
	raw, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, garbage) {
		t.Errorf("backup = %q, want original bytes", raw)
	}

	var doc map[string]json.RawMessage
	current, err := os.ReadFile(env.storePath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(current, &doc); err != nil {
		t.Fatalf("reset store is not JSON: %v", err)
	}
	if string(doc["users"]) != "{}" {
		t.Errorf("users = %s, want {}", doc["users"])
	}
}

func TestCLI_ConfigFlagOverridesEnv(t *testing.T) {
	testEnv(t)
	other := filepath.Join(t.TempDir(), "other.json")

	mustRun(t, "--config", other, "add", "work", "Jane", "jane@co.com")
	if _, err := os.Stat(other); err != nil {
		t.Errorf("--config store not written: %v", err)
	}
}

func TestCLI_DebugLogsCommands(t *testing.T) {
	env := testEnv(t)
	mustRun(t, "add", "work", "Jane", "jane@co.com")
	t.Setenv(envDebug, "1")

	// The fake runner does not log, so only the app's own debug lines show.
	_, stderr, code := runCLI(t, "work")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "level=debug") || !strings.Contains(stderr, env.storePath) {
		t.Errorf("stderr = %q, want debug logs", stderr)
	}
}

func TestCLI_InvalidKeyAgentMode(t *testing.T) {
	testEnv(t)
	t.Setenv(envKeyAgent, "gpg")

	_, stderr, code := runCLI(t, "list")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, envKeyAgent) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCLI_Version(t *testing.T) {
	testEnv(t)

	got := mustRun(t, "version")
	if !strings.HasPrefix(got, "gguser "+version+"\n") {
		t.Errorf("version output = %q", got)
	}
}
