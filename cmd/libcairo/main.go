// cmd/libcairo/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arc-language/libcairo/internal/cli"
	"github.com/arc-language/libcairo/pkg/build"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes user-facing configuration problems from failed builds
func exitCode(err error) int {
	switch {
	case errors.Is(err, build.ErrConfiguration):
		return 2
	case errors.Is(err, build.ErrRequirement):
		return 3
	default:
		return 1
	}
}
