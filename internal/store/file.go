package store

import (
	"fmt"
	"os"
	"path/filepath"
)

type tempFile interface {
	Write([]byte) (int, error)
	Chmod(os.FileMode) error
	Close() error
	Name() string
}

var (
	mkdirAll   = os.MkdirAll
	createTemp = func(dir string, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	removePath = os.Remove
	renamePath = os.Rename
)

// atomicWriteFile replaces path with raw via a temp file in the same directory.
func atomicWriteFile(path string, raw []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := mkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	tmp, err := createTemp(dir, ".gguser-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer removePath(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := renamePath(tmpName, path); err != nil {
		return fmt.Errorf("replacing file atomically: %w", err)
	}
	return nil
}
