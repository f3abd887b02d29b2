package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "dmdeploy",
	Short: "Create or update a Cloud Deployment Manager deployment",
	Long: `dmdeploy prepares the Google Cloud SDK on a CI runner and creates or updates a
Deployment Manager deployment.

It installs (or reuses) the requested gcloud version, activates the given
service account key, selects the project and then runs
"gcloud deployment-manager deployments create" for new deployments or
"... update" for deployments that already exist.

Every input can be given as a flag or as the matching GitHub Actions
INPUT_<NAME> environment variable.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDeploy,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// reportError prints err on stderr, as a workflow command when running on
// GitHub Actions so the message is attached to the step.
func reportError(err error) {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		fmt.Fprintf(os.Stdout, "::error::%s\n", escapeWorkflowData(err.Error()))
	}
	fmt.Fprintln(os.Stderr, err)
}
