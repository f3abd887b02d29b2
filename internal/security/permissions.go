package security

import (
	"fmt"
	"os"
)

const (
	// PermKeyFile is for service account keys written to disk.
	// rw------- (0600): only owner can read/write.
	PermKeyFile os.FileMode = 0600

	// PermCacheDir is for tool cache directories shared with later steps.
	// rwxr-xr-x (0755)
	PermCacheDir os.FileMode = 0755

	// PermCacheFile is for non-executable files in the tool cache.
	PermCacheFile os.FileMode = 0644
)

// CreateSecureTemp creates a temporary file in dir (the default temp
// directory when empty) with the given permissions regardless of umask.
func CreateSecureTemp(dir, pattern string, perm os.FileMode) (*os.File, error) {
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create secure file: %w", err)
	}

	if err := file.Chmod(perm); err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, fmt.Errorf("failed to set file permissions: %w", err)
	}

	return file, nil
}

// CreateSecureDir creates a directory, and its parents, with perm.
func CreateSecureDir(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// MkdirAll is subject to umask
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("failed to set directory permissions: %w", err)
	}

	return nil
}

// EnsureSecurePermissions checks that a file is not more permissive than
// expectedPerm.
func EnsureSecurePermissions(path string, expectedPerm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	actualPerm := info.Mode().Perm()
	if IsWorldReadable(actualPerm) && !IsWorldReadable(expectedPerm) {
		return fmt.Errorf("file %s is world-readable (%04o)", path, actualPerm)
	}
	if actualPerm&^expectedPerm != 0 {
		return fmt.Errorf("file %s has too permissive permissions: %04o (expected: %04o)",
			path, actualPerm, expectedPerm)
	}

	return nil
}

// IsWorldReadable checks if a file is readable by others.
func IsWorldReadable(perm os.FileMode) bool {
	return perm&0004 != 0
}
