package model

import (
	"errors"
	"fmt"
)

// ErrNoIdentity is returned when neither the local nor the global git
// configuration has a user configured.
var ErrNoIdentity = errors.New("no git user configured in this scope")

// UsageError indicates a command was invoked without its required arguments.
type UsageError struct {
	Usage  string // Usage line to show the user
	Reason string // What was missing, if known
}

func (e *UsageError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s\nUsage: %s", e.Reason, e.Usage)
	}
	return "Usage: " + e.Usage
}

// ProfileNotFoundError indicates the requested profile key is not in the store.
type ProfileNotFoundError struct {
	Key string
}

func (e *ProfileNotFoundError) Error() string {
	if e.Key == "" {
		return "profile not found"
	}
	return fmt.Sprintf("profile not found: %q", e.Key)
}

// InvalidProfileError indicates a profile field failed validation.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsUsageError returns true if the error is a usage error.
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// IsNotFound returns true if the error is a profile-not-found error.
func IsNotFound(err error) bool {
	var notFoundErr *ProfileNotFoundError
	return errors.As(err, &notFoundErr)
}

// IsInvalidProfile returns true if the error is a validation error.
func IsInvalidProfile(err error) bool {
	var invalidErr *InvalidProfileError
	return errors.As(err, &invalidErr)
}
