// Package action holds the data shared by the two halves of a dmdeploy run.
//
// A run is two steps composed in order:
//   - internal/bootstrap turns a Config into a ResolvedEnvironment (SDK
//     version installed and on PATH, account authenticated, project set)
//   - internal/deployment builds and executes the deployment-manager
//     create or update command for the Config
//
// Config is the immutable input record, ResolvedEnvironment is produced once by
// the bootstrap step and only read afterwards. The error kinds defined here are
// the only failure surface of a run.
package action
