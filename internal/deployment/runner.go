package deployment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dmdeploy/internal/action"
	"dmdeploy/pkg/cmdutil"
)

// Runner creates or updates a Deployment Manager deployment.
type Runner struct {
	Executor CommandRunner
	Logger   *slog.Logger
}

var _ action.Runner = (*Runner)(nil)

// NewRunner creates a runner that executes commands through exec.
func NewRunner(exec CommandRunner, logger *slog.Logger) *Runner {
	return &Runner{
		Executor: exec,
		Logger:   logger,
	}
}

// Plan validates cfg, checks whether the deployment exists and returns the
// finalized command without executing it.
func (r *Runner) Plan(ctx context.Context, cfg *action.Config) (Command, error) {
	logger := r.logger()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cmd := NewCommand(cfg)

	if r.exists(ctx, cfg.Deployment) {
		logger.Info("Updating deployment", "deployment", cfg.Deployment)
		cmd = cmd.toUpdate()
	}

	// Validate already rejected properties with a config file.
	if cfg.Properties != "" {
		cmd = cmd.withFlag("--properties", cfg.Properties)
	}

	if cfg.Labels != "" {
		flag := "--labels"
		if cmd.IsUpdate() {
			flag = "--update-labels"
		}
		cmd = cmd.withFlag(flag, cfg.Labels)
	}

	return cmd, nil
}

// Run plans and executes the deployment command exactly once.
func (r *Runner) Run(ctx context.Context, cfg *action.Config, env *action.ResolvedEnvironment) error {
	logger := r.logger()
	if env == nil {
		env = &action.ResolvedEnvironment{}
	}

	cmd, err := r.Plan(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Info("Running deployment command",
		"command", cmdutil.FormatCommand(cmd),
		"project", env.ProjectID,
		"gcloud_version", env.Version)

	result, err := r.Executor.RunCommand(ctx, cmd)
	if err != nil || !result.OK() {
		if err == nil {
			err = fmt.Errorf("command exited with code %d", result.ReturnCode)
		}
		if result != nil {
			if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
				return &action.DeploymentError{Msg: stderr, Err: err}
			}
		}
		return &action.DeploymentError{Msg: err.Error(), Err: err}
	}

	logger.Info("Deployment command succeeded",
		"verb", cmd.Verb(),
		"deployment", cfg.Deployment,
		"duration_ms", result.Duration.Milliseconds())
	if out := strings.TrimSpace(result.Stdout); out != "" {
		logger.Debug("Deployment command output", "stdout", out)
	}

	return nil
}

// exists reports whether the listing contains the named deployment. A failed
// listing or unparsable output counts as "does not exist", which makes the run
// fall back to create.
func (r *Runner) exists(ctx context.Context, name string) bool {
	logger := r.logger()

	result, err := r.Executor.RunCommand(ctx, listArgs)
	if result == nil {
		result = &ExecutionResult{}
	}
	if err != nil {
		logger.Debug("Listing deployments failed", "error", err, "stderr", strings.TrimSpace(result.Stderr))
	}

	records, err := ParseDeployments(result.Stdout)
	if err != nil {
		logger.Debug("Ignoring unparsable deployment list", "error", err)
	}

	return FindDeployment(records, name) != nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}
