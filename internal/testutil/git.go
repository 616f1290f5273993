package testutil

import (
	"sync"

	"github.com/nvinuesa/gguser/internal/execx"
)

// FakeGit emulates `git config --local|--global <key> [value]` in memory.
// Local reads and writes fail with status 128 unless InRepo is set, and
// reading an unset key fails with status 1, as git does.
type FakeGit struct {
	mu     sync.Mutex
	InRepo bool
	Local  map[string]string
	Global map[string]string

	// FailSet makes every write fail with status 255.
	FailSet bool
}

// NewFakeGit returns an empty fake git configuration.
func NewFakeGit() *FakeGit {
	return &FakeGit{
		Local:  map[string]string{},
		Global: map[string]string{},
	}
}

// Handle answers a git command. It is meant to be used as FakeRunner.Handler.
func (g *FakeGit) Handle(cmd execx.Command) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	args := cmd.Args
	if len(args) < 3 || args[0] != "config" {
		return "", Failure(cmd, 129, "usage: git config")
	}

	var values map[string]string
	switch args[1] {
	case "--local":
		if !g.InRepo {
			return "", Failure(cmd, 128, "fatal: --local can only be used inside a git repository")
		}
		values = g.Local
	case "--global":
		values = g.Global
	default:
		return "", Failure(cmd, 129, "unknown scope "+args[1])
	}

	key := args[2]
	if len(args) == 3 {
		v, ok := values[key]
		if !ok {
			return "", Failure(cmd, 1, "")
		}
		return v + "\n", nil
	}

	if g.FailSet {
		return "", Failure(cmd, 255, "error: could not lock config file")
	}
	values[key] = args[3]
	return "", nil
}
