package sshkey

import (
	"errors"
	"fmt"
)

// ErrNoAgent is returned when no agent socket is configured.
var ErrNoAgent = errors.New("no SSH agent: SSH_AUTH_SOCK is not set")

// KeyError indicates a private key file could not be loaded.
type KeyError struct {
	Path   string
	Reason string
	Err    error
}

func (e *KeyError) Error() string {
	msg := fmt.Sprintf("ssh key %q: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// IsKeyError returns true if the error is a key loading error.
func IsKeyError(err error) bool {
	var keyErr *KeyError
	return errors.As(err, &keyErr)
}
