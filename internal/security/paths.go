package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ContainedPath joins name onto base and rejects results outside base. It is
// used for archive entries, which must never escape the extraction root.
func ContainedPath(base, name string) (string, error) {
	cleanBase := filepath.Clean(base)
	target := filepath.Join(cleanBase, name)

	rel, err := filepath.Rel(cleanBase, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %q is outside %q", name, cleanBase)
	}

	return target, nil
}

// ValidatePathSegment ensures value can be used as a single directory name
// inside a managed tree.
func ValidatePathSegment(kind, value string) error {
	if err := ValidateArgument(kind, value); err != nil {
		return err
	}
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s must be a single path segment, got '%s'", kind, value)
	}
	return nil
}

// ValidateLinkTarget rejects symlink targets that resolve outside base when
// the link is created at linkPath.
func ValidateLinkTarget(base, linkPath, target string) error {
	if filepath.IsAbs(target) {
		return fmt.Errorf("absolute symlink target not allowed: %s", target)
	}

	resolved := filepath.Join(filepath.Dir(linkPath), target)
	rel, err := filepath.Rel(filepath.Clean(base), resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("symlink target %q escapes %q", target, base)
	}

	return nil
}
