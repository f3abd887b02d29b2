package sdk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"dmdeploy/internal/security"
	"dmdeploy/pkg/cmdutil"
)

// Gcloud manages the gcloud installation and its persistent configuration.
type Gcloud struct {
	// Command is the gcloud executable. Defaults to ToolCommand().
	Command string

	Releases *ReleaseClient
	Cache    *ToolCache
	Logger   *slog.Logger

	// secrets are redacted from every error message.
	secrets []string
}

// New creates a Gcloud that installs into the runner tool cache.
func New(logger *slog.Logger) (*Gcloud, error) {
	cache, err := NewToolCache()
	if err != nil {
		return nil, err
	}

	return &Gcloud{
		Command:  ToolCommand(),
		Releases: NewReleaseClient(DefaultReleaseURL),
		Cache:    cache,
		Logger:   logger,
	}, nil
}

// ToolCommand returns the name of the gcloud executable on this platform.
func ToolCommand() string {
	if runtime.GOOS == "windows" {
		return "gcloud.cmd"
	}
	return "gcloud"
}

// LatestVersion returns the newest published SDK version.
func (g *Gcloud) LatestVersion(ctx context.Context) (string, error) {
	return g.Releases.LatestVersion(ctx)
}

// IsInstalled reports whether a version is in the tool cache.
func (g *Gcloud) IsInstalled(version string) bool {
	return g.Cache.IsCached(version)
}

// Install downloads a version into the tool cache and puts it on PATH.
// It returns the install directory.
func (g *Gcloud) Install(ctx context.Context, version string) (string, error) {
	versionDir := filepath.Dir(g.Cache.Dir(version))
	if err := security.CreateSecureDir(versionDir, security.PermCacheDir); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	staging, err := os.MkdirTemp(versionDir, ".staging-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	archive := filepath.Join(staging, "sdk.tar.gz")
	g.logger().Debug("Downloading gcloud SDK", "version", version)
	if err := g.Releases.Download(ctx, version, archive); err != nil {
		return "", err
	}

	extracted := filepath.Join(staging, "extract")
	if err := extractTarGz(archive, extracted); err != nil {
		return "", fmt.Errorf("extracting SDK archive: %w", err)
	}

	dir := g.Cache.Dir(version)
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("clearing %s: %w", dir, err)
	}
	if err := os.Rename(filepath.Join(extracted, archiveRoot), dir); err != nil {
		return "", fmt.Errorf("moving SDK into cache: %w", err)
	}
	if err := g.Cache.MarkComplete(version); err != nil {
		return "", err
	}

	if err := AddPath(filepath.Join(dir, "bin")); err != nil {
		return "", err
	}
	return dir, nil
}

// Activate puts a cached version on PATH.
func (g *Gcloud) Activate(version string) error {
	if !g.Cache.IsCached(version) {
		return fmt.Errorf("gcloud %s is not installed", version)
	}
	return AddPath(filepath.Join(g.Cache.Dir(version), "bin"))
}

// Authenticate activates a service account key.
func (g *Gcloud) Authenticate(ctx context.Context, credentials string) error {
	g.addSecret(credentials)

	key, err := parseKey(credentials)
	if err != nil {
		return err
	}
	g.addSecret(string(key))

	email, err := serviceAccountEmail(key)
	if err != nil {
		return err
	}

	keyFile, err := writeKeyFile(key)
	if err != nil {
		return err
	}
	defer os.Remove(keyFile)

	_, err = g.run(ctx, "--quiet", "auth", "activate-service-account", email, "--key-file", keyFile)
	return err
}

// IsAuthenticated reports whether gcloud has an active account.
func (g *Gcloud) IsAuthenticated(ctx context.Context) (bool, error) {
	result, err := g.run(ctx, "auth", "list", "--filter=status:ACTIVE", "--format=value(account)")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(result.Stdout)) != "", nil
}

// SetProject makes projectID the active project.
func (g *Gcloud) SetProject(ctx context.Context, projectID string) error {
	_, err := g.run(ctx, "--quiet", "config", "set", "project", projectID)
	return err
}

// SetProjectWithKey makes the project of a service account key the active
// project and returns it.
func (g *Gcloud) SetProjectWithKey(ctx context.Context, credentials string) (string, error) {
	g.addSecret(credentials)

	key, err := parseKey(credentials)
	if err != nil {
		return "", err
	}

	projectID, err := keyProjectID(ctx, key)
	if err != nil {
		return "", err
	}

	if err := g.SetProject(ctx, projectID); err != nil {
		return "", err
	}
	return projectID, nil
}

// IsProjectIDSet reports whether gcloud has an active project.
func (g *Gcloud) IsProjectIDSet(ctx context.Context) (bool, error) {
	result, err := g.run(ctx, "config", "get-value", "project")
	if err != nil {
		return false, err
	}
	value := strings.TrimSpace(string(result.Stdout))
	return value != "" && value != "(unset)", nil
}

// run executes gcloud with prompts disabled and both streams captured.
func (g *Gcloud) run(ctx context.Context, args ...string) (*cmdutil.Result, error) {
	command := g.Command
	if command == "" {
		command = ToolCommand()
	}
	parts := append([]string{command}, args...)

	g.logger().Debug("Running gcloud", "command", cmdutil.FormatCommand(parts))
	result, err := cmdutil.Run(ctx, cmdutil.ExecOptions{
		Env: append(os.Environ(), "CLOUDSDK_CORE_DISABLE_PROMPTS=1"),
	}, parts)
	if err != nil {
		stderr := strings.TrimSpace(string(cmdutil.SanitizeOutput(result.Stderr, g.secrets)))
		if stderr != "" {
			return result, fmt.Errorf("gcloud %s: %s", args[indexOfVerb(args)], stderr)
		}
		return result, fmt.Errorf("gcloud %s: %w", args[indexOfVerb(args)], err)
	}
	return result, nil
}

func (g *Gcloud) addSecret(secret string) {
	if secret != "" {
		g.secrets = append(g.secrets, secret)
	}
}

func (g *Gcloud) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

// indexOfVerb skips leading global flags such as --quiet.
func indexOfVerb(args []string) int {
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return i
		}
	}
	return 0
}
