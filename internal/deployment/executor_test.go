package deployment

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExecutor_RunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}

	script := filepath.Join(t.TempDir(), "gcloud")
	content := "#!/bin/sh\necho \"$CLOUDSDK_CORE_DISABLE_PROMPTS $*\"\nif [ \"$3\" = create ]; then echo 'quota exceeded' 1>&2; exit 1; fi\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}

	executor := NewExecutor(script)

	t.Run("success", func(t *testing.T) {
		result, err := executor.RunCommand(context.Background(), listArgs)
		if err != nil {
			t.Fatalf("RunCommand() error = %v", err)
		}
		if !result.OK() {
			t.Errorf("OK() = false, return code %d", result.ReturnCode)
		}
		want := "1 deployment-manager deployments list --format yaml"
		if got := strings.TrimSpace(result.Stdout); got != want {
			t.Errorf("Stdout = %q, want %q", got, want)
		}
	})

	t.Run("failure keeps stderr separate", func(t *testing.T) {
		result, err := executor.RunCommand(context.Background(), []string{"deployment-manager", "deployments", "create", "web"})
		if err == nil {
			t.Fatal("RunCommand() should fail")
		}
		if result.OK() {
			t.Error("OK() = true for failed command")
		}
		if got := strings.TrimSpace(result.Stderr); got != "quota exceeded" {
			t.Errorf("Stderr = %q, want %q", got, "quota exceeded")
		}
		if strings.Contains(result.Stdout, "quota") {
			t.Errorf("Stdout should not contain stderr text: %q", result.Stdout)
		}
	})
}
