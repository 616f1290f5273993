package execx

import (
	"errors"
	"fmt"
	"os/exec"
)

// CommandError indicates an external command could not be started or exited
// with a non-zero status.
type CommandError struct {
	Command  Command
	ExitCode int    // -1 if the process never ran
	Stderr   string // Trimmed standard error
	Err      error  // Underlying error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError returns true if the error is an external command failure.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// IsNotInstalled returns true if the executable could not be found.
func IsNotInstalled(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// ExitCode returns the exit status carried by err, or -1.
func ExitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}
