package security

import (
	"fmt"
	"strings"
	"unicode"
)

// Input size limits for profile fields.
const (
	MaxProfileKeyLength = 128
	MaxNameLength       = 256
	MaxEmailLength      = 320
	MaxPathLength       = 4096
)

// ValidateStringLength validates that a string is within allowed length.
func ValidateStringLength(s string, maxLen int, fieldName string) error {
	if len(s) > maxLen {
		return fmt.Errorf("%s exceeds maximum length of %d bytes", fieldName, maxLen)
	}
	return nil
}

// ValidateNoControlChars rejects strings containing control characters,
// including newlines and a byte order mark.
func ValidateNoControlChars(s string, fieldName string) error {
	for _, r := range s {
		if r == 0 || unicode.IsControl(r) || r == '\ufeff' {
			return fmt.Errorf("%s contains control characters", fieldName)
		}
	}
	return nil
}

// ValidateProfileKey ensures a profile key can be stored and typed back on
// the command line.
func ValidateProfileKey(key string) error {
	if key == "" {
		return fmt.Errorf("profile key cannot be empty")
	}

	if err := ValidateStringLength(key, MaxProfileKeyLength, "profile key"); err != nil {
		return err
	}

	if err := ValidateNoControlChars(key, "profile key"); err != nil {
		return err
	}

	// A leading dash is parsed as a flag and never reaches the dispatcher
	if strings.HasPrefix(key, "-") {
		return fmt.Errorf("profile key cannot start with '-'")
	}

	if strings.TrimSpace(key) != key {
		return fmt.Errorf("profile key cannot start or end with whitespace")
	}

	return nil
}
