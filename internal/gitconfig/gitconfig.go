// Package gitconfig reads and writes git configuration through the git executable.
package gitconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nvinuesa/gguser/internal/execx"
	"github.com/nvinuesa/gguser/internal/paths"
)

// Configuration keys gguser manages.
const (
	KeyUserName  = "user.name"
	KeyUserEmail = "user.email"
)

// DefaultBinary is the git executable looked up on PATH.
const DefaultBinary = "git"

// Scope selects which git configuration file a read or write targets.
type Scope int

const (
	// ScopeGlobal is the per-user configuration (~/.gitconfig).
	ScopeGlobal Scope = iota
	// ScopeLocal is the repository configuration (.git/config).
	ScopeLocal
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeGlobal:
		return "global"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Flag returns the git config option selecting the scope.
func (s Scope) Flag() string {
	if s == ScopeLocal {
		return "--local"
	}
	return "--global"
}

// DetectScope returns ScopeLocal if dir contains a .git entry, which covers
// both regular repositories and worktrees, and ScopeGlobal otherwise.
func DetectScope(dir string) Scope {
	if paths.Exists(filepath.Join(dir, ".git")) {
		return ScopeLocal
	}
	return ScopeGlobal
}

// Client runs git config in a fixed working directory.
type Client struct {
	runner execx.Runner
	binary string
	dir    string
}

// New returns a client running binary (DefaultBinary if empty) in dir.
func New(runner execx.Runner, binary, dir string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{runner: runner, binary: binary, dir: dir}
}

// Dir returns the working directory commands run in.
func (c *Client) Dir() string {
	return c.dir
}

// Get returns the value of key in scope. An unset key is an error, as it is
// for git itself.
func (c *Client) Get(ctx context.Context, scope Scope, key string) (string, error) {
	out, err := c.runner.Run(ctx, c.command(scope, key))
	if err != nil {
		return "", fmt.Errorf("reading %s %s: %w", scope, key, err)
	}
	return strings.TrimSpace(out), nil
}

// Set writes key=value in scope. The value is passed as a single argument.
func (c *Client) Set(ctx context.Context, scope Scope, key, value string) error {
	if _, err := c.runner.Run(ctx, c.command(scope, key, value)); err != nil {
		return fmt.Errorf("setting %s %s: %w", scope, key, err)
	}
	return nil
}

func (c *Client) command(scope Scope, args ...string) execx.Command {
	return execx.Command{
		Name: c.binary,
		Args: append([]string{"config", scope.Flag()}, args...),
		Dir:  c.dir,
	}
}
