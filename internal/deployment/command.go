package deployment

import (
	"dmdeploy/internal/action"
)

const (
	verbCreate = "create"
	verbUpdate = "update"

	// verbIndex is the position of the verb in a Command.
	verbIndex = 2
)

// listArgs lists every deployment of the active project as YAML documents.
var listArgs = []string{"deployment-manager", "deployments", "list", "--format", "yaml"}

// Command is the argument list of a deployment-manager invocation.
type Command []string

// NewCommand builds the initial create command for cfg.
func NewCommand(cfg *action.Config) Command {
	return Command{
		"deployment-manager",
		"deployments",
		verbCreate,
		cfg.Deployment,
		cfg.PathFlag(),
	}
}

// Verb returns "create" or "update".
func (c Command) Verb() string {
	return c[verbIndex]
}

// IsUpdate reports whether the command updates an existing deployment.
func (c Command) IsUpdate() bool {
	return c.Verb() == verbUpdate
}

// toUpdate switches a freshly built create command to update. update takes
// no template or config argument, so the trailing path flag is dropped.
func (c Command) toUpdate() Command {
	c[verbIndex] = verbUpdate
	return c[:len(c)-1]
}

// withFlag appends a flag and its value as separate tokens.
func (c Command) withFlag(flag, value string) Command {
	return append(c, flag, value)
}
