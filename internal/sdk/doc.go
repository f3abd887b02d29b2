// Package sdk drives the Google Cloud SDK (gcloud) on a CI runner.
//
// Gcloud implements the helper surface the bootstrap step consumes:
//   - release lookup and archive download from the public SDK channel
//   - a tool cache laid out like the GitHub Actions one
//     (<RUNNER_TOOL_CACHE>/gcloud/<version>/<arch>) so cached versions are
//     shared with other actions on the same runner
//   - service account activation and project selection through the gcloud
//     binary itself
//
// Every gcloud invocation runs with prompts disabled. Credential material is
// written only to a private temporary file and is redacted from error text.
package sdk
