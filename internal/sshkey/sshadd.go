package sshkey

import (
	"context"
	"fmt"

	"github.com/nvinuesa/gguser/internal/execx"
)

// DefaultSSHAddBinary is the ssh-add executable looked up on PATH.
const DefaultSSHAddBinary = "ssh-add"

// SSHAdd registers keys by running ssh-add, which prompts for a passphrase
// on the terminal if the key needs one.
type SSHAdd struct {
	runner execx.Runner
	binary string
}

// NewSSHAdd returns an agent running binary (DefaultSSHAddBinary if empty).
func NewSSHAdd(runner execx.Runner, binary string) *SSHAdd {
	if binary == "" {
		binary = DefaultSSHAddBinary
	}
	return &SSHAdd{runner: runner, binary: binary}
}

// Add runs `ssh-add <path>`.
func (a *SSHAdd) Add(ctx context.Context, path string) error {
	cmd := execx.Command{
		Name:        a.binary,
		Args:        []string{path},
		Interactive: true,
	}
	if _, err := a.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("adding key to agent: %w", err)
	}
	return nil
}

var _ Agent = (*SSHAdd)(nil)
