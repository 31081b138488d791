// pkg/library/toolchain.go
package library

import (
	"context"
	"fmt"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/requirement"
	"github.com/arc-language/libcairo/pkg/shell"
)

// Toolchain is how a descriptor reaches the outside world: the base
// environment inherited by subprocesses, the process runner and the
// executable lookup. The zero value uses the real process environment,
// real subprocesses and PATH.
type Toolchain struct {
	Env      shell.Environment
	Runner   shell.Runner
	LookPath requirement.LookPath
}

// Environment returns the base environment for subprocesses
func (t Toolchain) Environment() shell.Environment {
	if t.Env.Len() == 0 {
		return shell.FromOS()
	}
	return t.Env
}

// Checker returns the requirement checker
func (t Toolchain) Checker() *requirement.Checker {
	return requirement.NewChecker(t.LookPath)
}

// Run executes cmd; a failure is reported as ErrSubprocess for op on library
func (t Toolchain) Run(ctx context.Context, bc *build.Context, op, library string, cmd shell.Command) error {
	runner := t.Runner
	if runner == nil {
		runner = shell.NewExecRunner(bc.Logger())
	}

	bc.Logger().WithField("library", library).Debugf("%s: %s", op, cmd)
	if err := runner.Run(ctx, cmd); err != nil {
		return SubprocessError(op, library, err)
	}
	return nil
}

// SubprocessError names the library whose build step failed
func SubprocessError(op, library string, err error) error {
	return &build.Error{
		Op:      fmt.Sprintf("could not %s", op),
		Library: library,
		Err:     fmt.Errorf("%w: %v", build.ErrSubprocess, err),
	}
}

// ToolchainUser is implemented by descriptors whose toolchain can be replaced
type ToolchainUser interface {
	SetToolchain(t Toolchain)
}

// PropagateToolchain hands t to every dependency that accepts one
func PropagateToolchain(deps Dependencies, t Toolchain) {
	for _, dep := range deps {
		if user, ok := dep.(ToolchainUser); ok {
			user.SetToolchain(t)
		}
	}
}
