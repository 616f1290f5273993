package model

import (
	"slices"

	"github.com/nvinuesa/gguser/internal/security"
)

// ReservedKeys are command names. A profile stored under one of these could
// never be switched to because the command always wins.
var ReservedKeys = []string{
	"add",
	"help",
	"link",
	"list",
	"now",
	"remove",
	"select",
	"unlink",
	"version",
}

// IsReservedKey reports whether key collides with a command name.
func IsReservedKey(key string) bool {
	return slices.Contains(ReservedKeys, key)
}

// ValidateKey validates a profile key.
func ValidateKey(key string) error {
	if err := security.ValidateProfileKey(key); err != nil {
		return &InvalidProfileError{Field: "profile key", Reason: err.Error()}
	}
	if IsReservedKey(key) {
		return &InvalidProfileError{Field: "profile key", Reason: "\"" + key + "\" is a command name"}
	}
	return nil
}

// Validate checks field lengths and rejects control characters. Email format
// and key file contents are not checked.
func (p Profile) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", p.Name, security.MaxNameLength},
		{"email", p.Email, security.MaxEmailLength},
		{"ssh key path", p.SSHKey, security.MaxPathLength},
	}

	for _, f := range fields {
		if err := security.ValidateStringLength(f.value, f.max, f.name); err != nil {
			return &InvalidProfileError{Field: f.name, Reason: err.Error()}
		}
		if err := security.ValidateNoControlChars(f.value, f.name); err != nil {
			return &InvalidProfileError{Field: f.name, Reason: err.Error()}
		}
	}
	return nil
}
