// Package sshkey registers profile SSH keys with the running SSH agent.
package sshkey

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nvinuesa/gguser/internal/execx"
)

// Agent registers a private key file with an SSH agent.
type Agent interface {
	Add(ctx context.Context, path string) error
}

// Mode selects the Agent implementation.
type Mode string

const (
	// ModeSSHAdd shells out to ssh-add.
	ModeSSHAdd Mode = "ssh-add"
	// ModeSocket speaks the agent protocol on $SSH_AUTH_SOCK directly.
	ModeSocket Mode = "agent"
)

// ParseMode parses a mode name. The empty string selects ModeSSHAdd.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSSHAdd:
		return ModeSSHAdd, nil
	case ModeSocket:
		return ModeSocket, nil
	default:
		return "", fmt.Errorf("unknown key agent mode: %q (want %q or %q)", s, ModeSSHAdd, ModeSocket)
	}
}

// Options configures New.
type Options struct {
	Mode Mode

	// Runner and Binary are used by ModeSSHAdd.
	Runner execx.Runner
	Binary string

	// Socket and Prompt are used by ModeSocket.
	Socket string
	Prompt PassphraseFunc

	Logger logrus.FieldLogger
}

// New returns the Agent selected by opts.Mode.
func New(opts Options) (Agent, error) {
	switch opts.Mode {
	case "", ModeSSHAdd:
		return NewSSHAdd(opts.Runner, opts.Binary), nil
	case ModeSocket:
		return NewSocketAgent(opts.Socket, opts.Prompt, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unknown key agent mode: %q", opts.Mode)
	}
}
