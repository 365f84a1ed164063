// Package filex resolves and creates the directories the client keeps its
// local state in.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DataDir returns the per-user directory for appName under the OS config
// directory, creating it if necessary. When no config directory is known
// it falls back to a hidden directory in the working directory.
func DataDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return EnsureDir("." + appName)
	}
	return EnsureDir(filepath.Join(base, appName))
}

// DataFile returns the path of name inside DataDir(appName).
func DataFile(appName, name string) (string, error) {
	dir, err := DataDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
