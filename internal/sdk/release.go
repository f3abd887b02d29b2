package sdk

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/go-resty/resty/v2"
)

// DefaultReleaseURL is the rapid release channel of the Cloud SDK.
const DefaultReleaseURL = "https://dl.google.com/dl/cloudsdk/channels/rapid"

// componentsManifest is the subset of components-2.json we read.
type componentsManifest struct {
	Version string `json:"version"`
}

// ReleaseClient talks to the SDK release channel.
type ReleaseClient struct {
	HTTPClient *resty.Client
}

// NewReleaseClient creates a client for the channel at baseURL.
func NewReleaseClient(baseURL string) *ReleaseClient {
	return &ReleaseClient{
		HTTPClient: resty.New().
			SetHeader("User-Agent", "dmdeploy").
			SetBaseURL(baseURL),
	}
}

// LatestVersion returns the newest published SDK version.
func (c *ReleaseClient) LatestVersion(ctx context.Context) (string, error) {
	resp, err := c.HTTPClient.R().
		SetHeader("Accept", "application/json").
		ForceContentType("application/json").
		SetResult(&componentsManifest{}).
		SetContext(ctx).
		Get("/components-2.json")
	if err != nil {
		return "", fmt.Errorf("fetching components manifest: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetching components manifest: unexpected status %s", resp.Status())
	}

	manifest := resp.Result().(*componentsManifest)
	if manifest.Version == "" {
		return "", fmt.Errorf("components manifest has no version")
	}
	return manifest.Version, nil
}

// Download saves the SDK archive of a version to dest.
func (c *ReleaseClient) Download(ctx context.Context, version, dest string) error {
	name, err := archiveName(version, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.R().
		SetContext(ctx).
		SetOutput(dest).
		Get("/downloads/" + name)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", name, err)
	}
	if resp.IsError() {
		os.Remove(dest)
		return fmt.Errorf("downloading %s: unexpected status %s", name, resp.Status())
	}

	return nil
}

// archiveName returns the release archive file name for a platform.
func archiveName(version, goos, goarch string) (string, error) {
	switch goos {
	case "linux", "darwin":
	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}

	arch, err := archiveArch(goarch)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("google-cloud-sdk-%s-%s-%s.tar.gz", version, goos, arch), nil
}
