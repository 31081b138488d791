// pkg/build/errors.go
package build

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates a malformed path or missing build input.
	// Reported before any subprocess runs.
	ErrConfiguration = errors.New("configuration error")

	// ErrRequirement indicates a missing toolchain binary or search directory
	ErrRequirement = errors.New("missing requirement")

	// ErrSubprocess indicates configure, make or the build tool exited non-zero
	ErrSubprocess = errors.New("subprocess failed")

	// ErrPlatformNotSupported indicates the context platform has no build path
	ErrPlatformNotSupported = errors.New("platform not supported")

	// ErrSourceUnavailable indicates sources could not be resolved
	ErrSourceUnavailable = errors.New("sources unavailable")
)

// Error wraps an error with the build step and library it came from
type Error struct {
	Op      string // Operation that failed
	Library string // Library name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Library != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Library, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
