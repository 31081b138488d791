// errors.go
package libcairo

import "github.com/arc-language/libcairo/pkg/build"

var (
	// ErrConfiguration indicates a malformed path or missing build input
	ErrConfiguration = build.ErrConfiguration

	// ErrRequirement indicates a missing toolchain binary or directory
	ErrRequirement = build.ErrRequirement

	// ErrSubprocess indicates configure, make or the build tool exited non-zero
	ErrSubprocess = build.ErrSubprocess

	// ErrPlatformNotSupported indicates the platform has no build path
	ErrPlatformNotSupported = build.ErrPlatformNotSupported

	// ErrSourceUnavailable indicates sources could not be resolved
	ErrSourceUnavailable = build.ErrSourceUnavailable
)

// Error wraps an error with the build step and library it came from
type Error = build.Error
