// Package paths resolves filesystem locations used by gguser.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = "gguser"
	storeFile  = "gguser.json"
)

var (
	userHomeDir   = os.UserHomeDir
	userConfigDir = os.UserConfigDir
)

// DefaultStorePath returns <user config dir>/gguser/gguser.json.
// Falls back to ~/.gguser.json if the config dir cannot be determined.
func DefaultStorePath() (string, error) {
	dir, err := userConfigDir()
	if err == nil && dir != "" {
		return filepath.Join(dir, appDirName, storeFile), nil
	}

	home, herr := userHomeDir()
	if herr != nil {
		return "", fmt.Errorf("resolving store location: %w", herr)
	}
	return filepath.Join(home, "."+storeFile), nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}
	// ~otheruser is left alone
	return path, nil
}

// Exists reports whether path exists. Permission errors count as existing.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
