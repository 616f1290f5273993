// Package testutil provides fakes shared by gguser tests.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/nvinuesa/gguser/internal/execx"
)

// FakeRunner records every command it is asked to run and answers with
// Handler. A nil Handler succeeds with empty output.
type FakeRunner struct {
	mu      sync.Mutex
	calls   []execx.Command
	Handler func(cmd execx.Command) (string, error)
}

// Run implements execx.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd execx.Command) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	handler := f.Handler
	f.mu.Unlock()

	if handler == nil {
		return "", nil
	}
	return handler(cmd)
}

// Calls returns the recorded commands.
func (f *FakeRunner) Calls() []execx.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]execx.Command(nil), f.calls...)
}

// Rendered returns the recorded commands rendered with Command.String.
func (f *FakeRunner) Rendered() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Failure builds the error a failed external command produces.
func Failure(cmd execx.Command, code int, stderr string) error {
	return &execx.CommandError{
		Command:  cmd,
		ExitCode: code,
		Stderr:   stderr,
		Err:      errors.New("exit status"),
	}
}

var _ execx.Runner = (*FakeRunner)(nil)
