package sdk

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"dmdeploy/internal/security"

	"golang.org/x/oauth2/google"
)

// parseKey returns the JSON of a service account key given either as raw
// JSON or base64 encoded JSON.
func parseKey(credentials string) ([]byte, error) {
	trimmed := strings.TrimSpace(credentials)
	if strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("credentials are neither JSON nor base64 encoded JSON")
	}
	if !strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return nil, fmt.Errorf("decoded credentials are not JSON")
	}
	return decoded, nil
}

// serviceAccountEmail returns the client email of a service account key.
func serviceAccountEmail(key []byte) (string, error) {
	cfg, err := google.JWTConfigFromJSON(key)
	if err != nil {
		return "", fmt.Errorf("parsing service account key: %w", err)
	}
	if cfg.Email == "" {
		return "", fmt.Errorf("service account key has no client_email")
	}
	return cfg.Email, nil
}

// keyProjectID returns the project a service account key belongs to.
func keyProjectID(ctx context.Context, key []byte) (string, error) {
	creds, err := google.CredentialsFromJSON(ctx, key)
	if err != nil {
		return "", fmt.Errorf("parsing service account key: %w", err)
	}
	if creds.ProjectID == "" {
		return "", fmt.Errorf("service account key has no project_id")
	}
	return creds.ProjectID, nil
}

// writeKeyFile stores key in a private temporary file. The caller removes it.
func writeKeyFile(key []byte) (string, error) {
	f, err := security.CreateSecureTemp(os.Getenv("RUNNER_TEMP"), "dmdeploy-key-*.json", security.PermKeyFile)
	if err != nil {
		return "", fmt.Errorf("creating key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing key file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing key file: %w", err)
	}
	return f.Name(), nil
}
