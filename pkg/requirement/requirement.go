// pkg/requirement/requirement.go
package requirement

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/arc-language/libcairo/pkg/build"
)

// LookPath finds an executable on the search path
type LookPath func(name string) (string, error)

// Checker verifies build requirements before any build step runs
type Checker struct {
	lookPath LookPath
}

// NewChecker creates a checker. A nil lookPath searches PATH.
func NewChecker(lookPath LookPath) *Checker {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Checker{lookPath: lookPath}
}

// Executables fails on the first tool that cannot be found
func (c *Checker) Executables(names ...string) error {
	for _, name := range names {
		if _, err := c.lookPath(name); err != nil {
			return fmt.Errorf("%w: could not find `%s`", build.ErrRequirement, name)
		}
	}
	return nil
}

// Directories fails on the first path that is not an existing directory.
// kind names the directories in the error (e.g., "Lib", "Include").
func (c *Checker) Directories(kind string, paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s folder does not exist: %s", build.ErrRequirement, kind, path)
		}
	}
	return nil
}
