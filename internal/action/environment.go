package action

import "context"

// DefaultGcloudVersion requests the newest published SDK release.
const DefaultGcloudVersion = "latest"

// ResolvedEnvironment is what the bootstrap step established for this run.
type ResolvedEnvironment struct {
	// Version is the concrete SDK version on PATH, never "latest".
	Version string

	// Authenticated is true once the SDK reported an active account.
	Authenticated bool

	// ProjectID is the project this run set. It is empty when the project was
	// already configured in the SDK before the run and none of the inputs
	// named one.
	ProjectID string
}

// Runner is implemented by each deployment kind. Run must not be called
// before the bootstrap step has produced env.
type Runner interface {
	Run(ctx context.Context, cfg *Config, env *ResolvedEnvironment) error
}
