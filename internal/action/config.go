package action

import (
	"fmt"
	"os"

	"dmdeploy/internal/security"

	"gopkg.in/yaml.v3"
)

// Config holds the inputs of one run. Treat it as read-only once Validate
// has succeeded.
type Config struct {
	Credentials   string `yaml:"credentials"`
	GcloudVersion string `yaml:"gcloud_version"`
	ProjectID     string `yaml:"project_id"`
	Deployment    string `yaml:"deployment"`
	Template      string `yaml:"template"`
	ConfigPath    string `yaml:"config"`
	Properties    string `yaml:"properties"`
	Labels        string `yaml:"labels"`
}

// NewConfig creates a new config with defaults
func NewConfig() *Config {
	return &Config{
		GcloudVersion: DefaultGcloudVersion,
	}
}

// LoadFromFile loads inputs from a YAML file. A missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading input file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing input file: %w", err)
	}

	return nil
}

// SetFromFlags updates config from command line flags. Empty values leave the
// current setting untouched.
func (c *Config) SetFromFlags(flags map[string]string) {
	for key, value := range flags {
		if value == "" {
			continue
		}
		switch key {
		case "credentials":
			c.Credentials = value
		case "gcloud-version":
			c.GcloudVersion = value
		case "project-id":
			c.ProjectID = value
		case "deployment":
			c.Deployment = value
		case "template":
			c.Template = value
		case "config":
			c.ConfigPath = value
		case "properties":
			c.Properties = value
		case "labels":
			c.Labels = value
		}
	}
}

// Validate rejects inputs that can never produce a valid command. It runs
// before any external call.
func (c *Config) Validate() error {
	if c.Deployment == "" {
		return &ConfigurationError{Msg: "missing required input: deployment"}
	}
	if err := security.ValidateArgument("deployment name", c.Deployment); err != nil {
		return &ConfigurationError{Msg: err.Error()}
	}
	if c.ProjectID != "" {
		if err := security.ValidateArgument("project id", c.ProjectID); err != nil {
			return &ConfigurationError{Msg: err.Error()}
		}
	}

	if c.GcloudVersion != "" && c.GcloudVersion != DefaultGcloudVersion {
		if err := security.ValidatePathSegment("gcloud version", c.GcloudVersion); err != nil {
			return &ConfigurationError{Msg: err.Error()}
		}
	}

	if c.Template != "" && c.ConfigPath != "" {
		return &ConfigurationError{Msg: "Both `template` and `config` specified."}
	}

	if c.Properties != "" && c.ConfigPath != "" {
		return &ConfigurationError{Msg: "Cannot use properties with config."}
	}

	if c.Labels != "" {
		if _, err := ParseLabels(c.Labels); err != nil {
			return &ConfigurationError{Msg: fmt.Sprintf("invalid labels: %v", err)}
		}
	}

	return nil
}

// UsesTemplate reports whether the deployment is defined by a template
// rather than a config file.
func (c *Config) UsesTemplate() bool {
	return c.Template != ""
}

// PathFlag returns the create-only flag naming the deployment definition.
func (c *Config) PathFlag() string {
	if c.UsesTemplate() {
		return "--template=" + c.Template
	}
	return "--config=" + c.ConfigPath
}

// Secrets returns the values that must never appear in logs.
func (c *Config) Secrets() []string {
	if c.Credentials == "" {
		return nil
	}
	return []string{c.Credentials}
}
