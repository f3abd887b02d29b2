package fileutil

import (
	"os"
	"path/filepath"
)

// SearchPathsOptional looks for a file in multiple locations.
// Returns the first path where the file exists, or empty string if not found.
func SearchPathsOptional(paths []string) string {
	for _, path := range paths {
		if FileExists(path) {
			return path
		}
	}
	return ""
}

// DefaultConfigPaths returns standard input file search paths for a given filename.
// Search order:
// 1. Current directory (./<filename>)
// 2. Workflow directory (./.github/<filename>)
// 3. GitHub workspace ($GITHUB_WORKSPACE/<filename>), when running on a runner
func DefaultConfigPaths(filename string) []string {
	paths := []string{
		filepath.Join(".", filename),
		filepath.Join(".", ".github", filename),
	}
	if workspace := os.Getenv("GITHUB_WORKSPACE"); workspace != "" {
		paths = append(paths, filepath.Join(workspace, filename))
	}
	return paths
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
