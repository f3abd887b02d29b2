package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateSecureTemp(t *testing.T) {
	dir := t.TempDir()

	file, err := CreateSecureTemp(dir, "key-*.json", PermKeyFile)
	if err != nil {
		t.Fatalf("CreateSecureTemp() error = %v", err)
	}
	defer file.Close()

	info, err := os.Stat(file.Name())
	if err != nil {
		t.Fatalf("File was not created: %v", err)
	}
	if got := info.Mode().Perm(); got != PermKeyFile {
		t.Errorf("File permissions = %04o, want %04o", got, PermKeyFile)
	}
	if filepath.Dir(file.Name()) != dir {
		t.Errorf("File created in %s, want %s", filepath.Dir(file.Name()), dir)
	}
}

func TestCreateSecureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gcloud", "367.0.0")

	if err := CreateSecureDir(path, PermCacheDir); err != nil {
		t.Fatalf("CreateSecureDir() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Path is not a directory")
	}
	if got := info.Mode().Perm(); got != PermCacheDir {
		t.Errorf("Directory permissions = %04o, want %04o", got, PermCacheDir)
	}
}

func TestEnsureSecurePermissions(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		perm     os.FileMode
		expected os.FileMode
		wantErr  string
	}{
		{"exact match", 0600, 0600, ""},
		{"more restrictive", 0400, 0600, ""},
		{"group readable", 0640, 0600, "too permissive"},
		{"world readable", 0644, 0600, "world-readable"},
		{"world readable allowed", 0644, 0644, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, []byte("{}"), tt.perm); err != nil {
				t.Fatalf("Failed to create file: %v", err)
			}
			if err := os.Chmod(path, tt.perm); err != nil {
				t.Fatalf("Failed to chmod: %v", err)
			}

			err := EnsureSecurePermissions(path, tt.expected)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("EnsureSecurePermissions() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("EnsureSecurePermissions() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsWorldReadable(t *testing.T) {
	if !IsWorldReadable(0644) {
		t.Error("0644 should be world readable")
	}
	if IsWorldReadable(0600) {
		t.Error("0600 should not be world readable")
	}
}

func TestContainedPath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain file", "google-cloud-sdk/bin/gcloud", false},
		{"root dir", "google-cloud-sdk/", false},
		{"dot entry", "./google-cloud-sdk", false},
		{"inner dotdot", "google-cloud-sdk/lib/../bin/gcloud", false},
		{"parent escape", "../evil", true},
		{"nested escape", "google-cloud-sdk/../../evil", true},
		{"dotdot prefixed name", "..data/file", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContainedPath(base, tt.entry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ContainedPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != filepath.Join(base, tt.entry) {
				t.Errorf("ContainedPath() = %s, want %s", got, filepath.Join(base, tt.entry))
			}
		})
	}
}

func TestValidateLinkTarget(t *testing.T) {
	base := "/cache/gcloud"

	tests := []struct {
		name    string
		link    string
		target  string
		wantErr bool
	}{
		{"sibling", "/cache/gcloud/bin/gcloud", "../lib/gcloud.py", false},
		{"same dir", "/cache/gcloud/bin/gsutil", "gsutil.py", false},
		{"absolute", "/cache/gcloud/bin/sh", "/bin/sh", true},
		{"escape", "/cache/gcloud/bin/x", "../../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLinkTarget(base, tt.link, tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLinkTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePathSegment(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"release version", "367.0.0", false},
		{"parent", "..", true},
		{"traversal", "../../x", true},
		{"nested", "367.0.0/bin", true},
		{"backslash", `..\x`, true},
		{"flag", "-1", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathSegment("gcloud version", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathSegment() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateArgument(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid deployment", "web-frontend", false},
		{"valid project", "my-project-123", false},
		{"empty", "", true},
		{"flag injection", "--project=other", true},
		{"single dash", "-x", true},
		{"newline", "web\nother", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgument("deployment", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArgument() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
