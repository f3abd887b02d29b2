package deployment

import (
	"context"
	"os"
	"time"

	"dmdeploy/pkg/cmdutil"
)

// ExecutionResult represents the result of running a command
type ExecutionResult struct {
	ReturnCode int
	Stdout     string
	Stderr     string
	Duration   time.Duration
}

// OK checks if the execution was successful
func (r *ExecutionResult) OK() bool {
	return r.ReturnCode == 0
}

// CommandRunner runs one invocation of the deployment tool. args excludes
// the tool itself.
type CommandRunner interface {
	RunCommand(ctx context.Context, args []string) (*ExecutionResult, error)
}

// Executor runs the gcloud binary with stdout and stderr captured separately.
type Executor struct {
	ToolCommand string
}

// NewExecutor creates a new executor for the given tool command
func NewExecutor(toolCommand string) *Executor {
	return &Executor{ToolCommand: toolCommand}
}

// RunCommand executes the tool with args. The environment is read at call
// time so PATH changes made while bootstrapping are visible.
func (e *Executor) RunCommand(ctx context.Context, args []string) (*ExecutionResult, error) {
	parts := append([]string{e.ToolCommand}, args...)

	result, err := cmdutil.Run(ctx, cmdutil.ExecOptions{
		Env: append(os.Environ(), "CLOUDSDK_CORE_DISABLE_PROMPTS=1"),
	}, parts)

	execResult := &ExecutionResult{
		ReturnCode: result.ExitCode,
		Stdout:     string(result.Stdout),
		Stderr:     string(result.Stderr),
		Duration:   result.Duration,
	}

	return execResult, err
}
