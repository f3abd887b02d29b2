package security

import (
	"fmt"
	"strings"
)

// ValidateArgument ensures a value handed to the gcloud CLI as a positional
// argument cannot be read as a flag.
func ValidateArgument(kind, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if strings.HasPrefix(value, "-") {
		return fmt.Errorf("%s cannot start with '-', got '%s'", kind, value)
	}
	if strings.ContainsAny(value, "\x00\n\r") {
		return fmt.Errorf("%s contains control characters", kind)
	}
	return nil
}
