package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Command describes one invocation of an external executable.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Interactive connects the runner's stdin, stdout and stderr so the
	// executable can prompt the user. Output is still captured.
	Interactive bool
}

// String renders the command for logs. Arguments containing whitespace or
// quotes are quoted; the result is for display only.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\$`") {
			arg = strconv.Quote(arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Runner executes commands and returns their standard output.
type Runner interface {
	Run(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	log    logrus.FieldLogger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRunner returns a runner wired to the process's standard streams for
// interactive commands.
func NewRunner(logger logrus.FieldLogger) *ExecRunner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ExecRunner{
		log:    logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithStreams overrides the streams used for interactive commands.
func (r *ExecRunner) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *ExecRunner {
	r.stdin = stdin
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// Run executes c and returns its captured stdout. A failed command returns
// a *CommandError carrying the exit code and trimmed stderr.
func (r *ExecRunner) Run(ctx context.Context, c Command) (string, error) {
	r.log.Debugf("+ %s", c)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	if c.Interactive {
		cmd.Stdin = r.stdin
		cmd.Stdout = io.MultiWriter(r.stdout, &stdout)
		cmd.Stderr = io.MultiWriter(r.stderr, &stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		code = 124
	}

	cmdErr := &CommandError{
		Command:  c,
		ExitCode: code,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}
	r.log.WithField("exit_code", code).Debugf("command failed: %s", c)
	return stdout.String(), cmdErr
}

var _ Runner = (*ExecRunner)(nil)
