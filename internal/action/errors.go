package action

import "errors"

var (
	// ErrConfiguration indicates mutually exclusive or incompatible inputs.
	// It is always raised before any external command runs.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates the SDK could not be authenticated or no
	// project could be resolved after authentication.
	ErrAuthentication = errors.New("authentication error")

	// ErrDeployment indicates the deployment command exited unsuccessfully.
	ErrDeployment = errors.New("deployment error")
)

// ConfigurationError reports invalid inputs.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// AuthenticationError reports a failed post-authentication or project check.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// Is lets errors.Is(err, ErrAuthentication) match.
func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// DeploymentError reports a failed deployment command. Msg is the standard
// error text of the command when it wrote any, otherwise the message of Err.
type DeploymentError struct {
	Msg string
	Err error
}

func (e *DeploymentError) Error() string { return e.Msg }

func (e *DeploymentError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDeployment) match.
func (e *DeploymentError) Is(target error) bool { return target == ErrDeployment }
