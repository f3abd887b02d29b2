package sdk

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"dmdeploy/internal/security"
	"dmdeploy/pkg/fileutil"
)

const toolName = "gcloud"

// ToolCache locates SDK installs on disk.
type ToolCache struct {
	// Root is the tool cache directory.
	Root string

	// Arch is the architecture segment of cache paths.
	Arch string
}

// NewToolCache returns the runner's tool cache, or a per-user cache directory
// when not running on a runner.
func NewToolCache() (*ToolCache, error) {
	root := os.Getenv("RUNNER_TOOL_CACHE")
	if root == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locating cache directory: %w", err)
		}
		root = filepath.Join(cacheDir, "dmdeploy", "toolcache")
	}

	return &ToolCache{
		Root: root,
		Arch: cacheArch(runtime.GOARCH),
	}, nil
}

// Dir returns the install directory of a version.
func (tc *ToolCache) Dir(version string) string {
	return filepath.Join(tc.Root, toolName, version, tc.Arch)
}

// IsCached reports whether a version was fully installed.
func (tc *ToolCache) IsCached(version string) bool {
	return fileutil.DirExists(tc.Dir(version)) && fileutil.FileExists(tc.markerPath(version))
}

// MarkComplete records that the install of a version finished.
func (tc *ToolCache) MarkComplete(version string) error {
	if err := os.WriteFile(tc.markerPath(version), nil, security.PermCacheFile); err != nil {
		return fmt.Errorf("writing cache marker: %w", err)
	}
	return nil
}

func (tc *ToolCache) markerPath(version string) string {
	return tc.Dir(version) + ".complete"
}

// AddPath prepends dir to PATH for this process and, on GitHub Actions, for
// the steps that follow. Adding a directory already on PATH is a no-op for
// this process.
func AddPath(dir string) error {
	if pathFile := os.Getenv("GITHUB_PATH"); pathFile != "" {
		f, err := os.OpenFile(pathFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening GITHUB_PATH: %w", err)
		}
		_, werr := fmt.Fprintln(f, dir)
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("writing GITHUB_PATH: %w", werr)
		}
		if cerr != nil {
			return fmt.Errorf("closing GITHUB_PATH: %w", cerr)
		}
	}

	current := os.Getenv("PATH")
	for _, entry := range filepath.SplitList(current) {
		if entry == dir {
			return nil
		}
	}

	if current == "" {
		return os.Setenv("PATH", dir)
	}
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+current)
}

// cacheArch maps GOARCH onto the names the runner tool cache uses.
func cacheArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return strings.ToLower(goarch)
	}
}

// archiveArch maps GOARCH onto the names used in SDK archive file names.
func archiveArch(goarch string) (string, error) {
	switch goarch {
	case "amd64":
		return "x86_64", nil
	case "386":
		return "x86", nil
	case "arm64":
		return "arm", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
}
