package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"dmdeploy/internal/action"
	"dmdeploy/internal/bootstrap"
	"dmdeploy/internal/deployment"
	"dmdeploy/internal/sdk"
	"dmdeploy/pkg/cmdutil"
	"dmdeploy/pkg/fileutil"

	"github.com/spf13/cobra"
)

const defaultInputFile = "dmdeploy.yaml"

var (
	credentials   string
	gcloudVersion string
	projectID     string
	deploymentArg string
	templatePath  string
	configPath    string
	properties    string
	labels        string
	inputFile     string
	dryRun        bool
	verbose       bool
)

func init() {
	registerFlags(rootCmd)
}

func registerFlags(cmd *cobra.Command) {
	// Action inputs. The credentials default stays empty so usage output never
	// shows the key; loadConfig reads INPUT_CREDENTIALS instead.
	cmd.Flags().StringVar(&credentials, "credentials", "", "Service account key, JSON or base64 encoded JSON (default: $INPUT_CREDENTIALS)")
	cmd.Flags().StringVar(&gcloudVersion, "gcloud-version", getEnvOrDefault("INPUT_GCLOUD_VERSION", ""), "gcloud SDK version (default: latest)")
	cmd.Flags().StringVar(&projectID, "project-id", getEnvOrDefault("INPUT_PROJECT_ID", ""), "Project to deploy into")
	cmd.Flags().StringVar(&deploymentArg, "deployment", getEnvOrDefault("INPUT_DEPLOYMENT", ""), "Deployment name (required)")
	cmd.Flags().StringVar(&templatePath, "template", getEnvOrDefault("INPUT_TEMPLATE", ""), "Template file, mutually exclusive with --config")
	cmd.Flags().StringVar(&configPath, "config", getEnvOrDefault("INPUT_CONFIG", ""), "Config file, mutually exclusive with --template")
	cmd.Flags().StringVar(&properties, "properties", getEnvOrDefault("INPUT_PROPERTIES", ""), "Template properties, key:value[,key:value...]")
	cmd.Flags().StringVar(&labels, "labels", getEnvOrDefault("INPUT_LABELS", ""), "Deployment labels, key=value[,key=value...]")

	// Run options
	cmd.Flags().StringVarP(&inputFile, "input-file", "f", "", "YAML file with inputs (default: ./dmdeploy.yaml if present)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the deployment command instead of running it")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", os.Getenv("RUNNER_DEBUG") == "1", "Verbose output")
}

// preparer is satisfied by *bootstrap.Bootstrapper.
type preparer interface {
	Prepare(ctx context.Context, cfg *action.Config) (*action.ResolvedEnvironment, error)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	logger := setupLogging(verbose)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	gcloud, err := sdk.New(logger)
	if err != nil {
		return fmt.Errorf("failed to set up gcloud: %w", err)
	}
	boot := bootstrap.New(gcloud, logger)
	runner := deployment.NewRunner(deployment.NewExecutor(sdk.ToolCommand()), logger)

	if dryRun {
		return plan(cmd.Context(), cmd, cfg, boot, runner)
	}
	return deploy(cmd.Context(), cfg, boot, runner)
}

// loadConfig merges the input file and flags into a Config.
func loadConfig(logger *slog.Logger) (*action.Config, error) {
	cfg := action.NewConfig()

	if inputFile == "" {
		inputFile = fileutil.SearchPathsOptional(fileutil.DefaultConfigPaths(defaultInputFile))
	}
	if inputFile != "" {
		logger.Info("Loading inputs", "file", inputFile)
		if err := cfg.LoadFromFile(inputFile); err != nil {
			return nil, fmt.Errorf("failed to load input file: %w", err)
		}
	}

	creds := credentials
	if creds == "" {
		creds = os.Getenv("INPUT_CREDENTIALS")
	}

	// Flags (and INPUT_* variables) override the file
	cfg.SetFromFlags(map[string]string{
		"credentials":    creds,
		"gcloud-version": gcloudVersion,
		"project-id":     projectID,
		"deployment":     deploymentArg,
		"template":       templatePath,
		"config":         configPath,
		"properties":     properties,
		"labels":         labels,
	})

	return cfg, nil
}

// deploy validates cfg, bootstraps the SDK and runs the deployment. Invalid
// inputs fail before any external call.
func deploy(ctx context.Context, cfg *action.Config, boot preparer, runner action.Runner) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	env, err := boot.Prepare(ctx, cfg)
	if err != nil {
		return err
	}

	return runner.Run(ctx, cfg, env)
}

func plan(ctx context.Context, cmd *cobra.Command, cfg *action.Config, boot preparer, runner *deployment.Runner) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := boot.Prepare(ctx, cfg); err != nil {
		return err
	}

	planned, err := runner.Plan(ctx, cfg)
	if err != nil {
		return err
	}

	parts := append([]string{sdk.ToolCommand()}, planned...)
	fmt.Fprintln(cmd.OutOrStdout(), cmdutil.FormatCommand(parts))
	return nil
}

// setupLogging configures slog for step logs on stderr
func setupLogging(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

// Helper functions for environment variables
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// escapeWorkflowData escapes a workflow command message.
func escapeWorkflowData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
