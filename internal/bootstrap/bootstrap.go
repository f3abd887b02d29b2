package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dmdeploy/internal/action"
)

const (
	// ProjectEnvVar names the fallback project when neither an explicit
	// project id nor credentials are given.
	ProjectEnvVar = "GCLOUD_PROJECT"

	errNotAuthenticated = "Error authenticating gcloud."
	errProjectNotSet    = "Project id not set. Ensure credentials for project have been provided."
)

// SDK is the slice of the Cloud SDK helper surface the bootstrap step needs.
type SDK interface {
	LatestVersion(ctx context.Context) (string, error)
	IsInstalled(version string) bool
	Install(ctx context.Context, version string) (string, error)
	// Activate puts an already installed version on PATH.
	Activate(version string) error
	Authenticate(ctx context.Context, credentials string) error
	IsAuthenticated(ctx context.Context) (bool, error)
	SetProject(ctx context.Context, projectID string) error
	SetProjectWithKey(ctx context.Context, credentials string) (string, error)
	IsProjectIDSet(ctx context.Context) (bool, error)
}

// Bootstrapper prepares the SDK for a run.
type Bootstrapper struct {
	SDK    SDK
	Logger *slog.Logger

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// New creates a bootstrapper backed by the process environment.
func New(sdk SDK, logger *slog.Logger) *Bootstrapper {
	return &Bootstrapper{
		SDK:    sdk,
		Logger: logger,
		Getenv: os.Getenv,
	}
}

// Prepare resolves the SDK version, installs or reuses it, authenticates and
// resolves the active project. Every step runs at most once and none is
// retried.
func (b *Bootstrapper) Prepare(ctx context.Context, cfg *action.Config) (*action.ResolvedEnvironment, error) {
	logger := b.logger()

	// Step 1: resolve the version
	version, err := b.resolveVersion(ctx, cfg.GcloudVersion)
	if err != nil {
		return nil, err
	}

	// Step 2: install or reuse
	if !b.SDK.IsInstalled(version) {
		logger.Info("Installing gcloud SDK", "version", version)
		path, err := b.SDK.Install(ctx, version)
		if err != nil {
			return nil, fmt.Errorf("installing gcloud %s: %w", version, err)
		}
		logger.Debug("Installed gcloud SDK", "path", path)
	} else {
		logger.Debug("Using cached gcloud SDK", "version", version)
		if err := b.SDK.Activate(version); err != nil {
			return nil, fmt.Errorf("activating gcloud %s: %w", version, err)
		}
	}

	// Step 3: activate credentials when given
	if cfg.Credentials != "" {
		if err := b.SDK.Authenticate(ctx, cfg.Credentials); err != nil {
			return nil, fmt.Errorf("authenticating gcloud: %w", err)
		}
	}

	// Step 4: post-authentication check
	authenticated, err := b.SDK.IsAuthenticated(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking gcloud authentication: %w", err)
	}
	if !authenticated {
		return nil, &action.AuthenticationError{Msg: errNotAuthenticated}
	}
	logger.Info("Authenticated using gcloud", "version", version)

	// Step 5: project resolution, first match wins
	projectID, err := b.resolveProject(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Step 6: a project must be set by now
	isSet, err := b.SDK.IsProjectIDSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking gcloud project: %w", err)
	}
	if !isSet {
		return nil, &action.AuthenticationError{Msg: errProjectNotSet}
	}

	return &action.ResolvedEnvironment{
		Version:       version,
		Authenticated: true,
		ProjectID:     projectID,
	}, nil
}

func (b *Bootstrapper) resolveVersion(ctx context.Context, requested string) (string, error) {
	if requested != "" && requested != action.DefaultGcloudVersion {
		return requested, nil
	}

	version, err := b.SDK.LatestVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("looking up latest gcloud version: %w", err)
	}
	return version, nil
}

func (b *Bootstrapper) resolveProject(ctx context.Context, cfg *action.Config) (string, error) {
	switch {
	case cfg.ProjectID != "":
		if err := b.SDK.SetProject(ctx, cfg.ProjectID); err != nil {
			return "", fmt.Errorf("setting project %s: %w", cfg.ProjectID, err)
		}
		return cfg.ProjectID, nil

	case cfg.Credentials != "":
		projectID, err := b.SDK.SetProjectWithKey(ctx, cfg.Credentials)
		if err != nil {
			return "", fmt.Errorf("setting project from credentials: %w", err)
		}
		return projectID, nil

	case b.getenv(ProjectEnvVar) != "":
		projectID := b.getenv(ProjectEnvVar)
		if err := b.SDK.SetProject(ctx, projectID); err != nil {
			return "", fmt.Errorf("setting project %s: %w", projectID, err)
		}
		return projectID, nil
	}

	return "", nil
}

func (b *Bootstrapper) getenv(key string) string {
	if b.Getenv == nil {
		return os.Getenv(key)
	}
	return b.Getenv(key)
}

func (b *Bootstrapper) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}
