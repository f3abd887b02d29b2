package sdk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToolCache(t *testing.T) {
	tc := &ToolCache{Root: t.TempDir(), Arch: "x64"}

	if got, want := tc.Dir("367.0.0"), filepath.Join(tc.Root, "gcloud", "367.0.0", "x64"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}

	if tc.IsCached("367.0.0") {
		t.Fatal("IsCached() = true for empty cache")
	}

	if err := os.MkdirAll(tc.Dir("367.0.0"), 0755); err != nil {
		t.Fatalf("Failed to create cache dir: %v", err)
	}
	if tc.IsCached("367.0.0") {
		t.Error("IsCached() = true without completion marker")
	}

	if err := tc.MarkComplete("367.0.0"); err != nil {
		t.Fatalf("MarkComplete() error = %v", err)
	}
	if !tc.IsCached("367.0.0") {
		t.Error("IsCached() = false after MarkComplete")
	}
}

func TestNewToolCache_UsesRunnerCache(t *testing.T) {
	root := t.TempDir()
	t.Setenv("RUNNER_TOOL_CACHE", root)

	tc, err := NewToolCache()
	if err != nil {
		t.Fatalf("NewToolCache() error = %v", err)
	}
	if tc.Root != root {
		t.Errorf("Root = %q, want %q", tc.Root, root)
	}
}

func TestAddPath(t *testing.T) {
	pathFile := filepath.Join(t.TempDir(), "github_path")
	t.Setenv("GITHUB_PATH", pathFile)
	t.Setenv("PATH", "/usr/bin")

	dir := "/opt/gcloud/bin"
	if err := AddPath(dir); err != nil {
		t.Fatalf("AddPath() error = %v", err)
	}
	if err := AddPath(dir); err != nil {
		t.Fatalf("AddPath() second call error = %v", err)
	}

	want := dir + string(os.PathListSeparator) + "/usr/bin"
	if got := os.Getenv("PATH"); got != want {
		t.Errorf("PATH = %q, want %q", got, want)
	}

	data, err := os.ReadFile(pathFile)
	if err != nil {
		t.Fatalf("Failed to read GITHUB_PATH file: %v", err)
	}
	if !strings.Contains(string(data), dir+"\n") {
		t.Errorf("GITHUB_PATH file = %q, want it to contain %q", data, dir)
	}
}

func TestCacheArch(t *testing.T) {
	testCases := map[string]string{
		"amd64": "x64",
		"386":   "x86",
		"arm64": "arm64",
	}
	for goarch, want := range testCases {
		if got := cacheArch(goarch); got != want {
			t.Errorf("cacheArch(%q) = %q, want %q", goarch, got, want)
		}
	}
}
