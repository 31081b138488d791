// pkg/shell/runner.go
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Command is a single subprocess invocation
type Command struct {
	Path string      // Executable name or path
	Args []string    // Arguments, without the executable
	Dir  string      // Working directory
	Env  Environment // Complete environment of the subprocess
}

// String renders the command line the way a shell user would type it
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Path))
	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\"'$") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Runner executes commands synchronously
type Runner interface {
	// Run blocks until the command exits. A non-zero exit is an error.
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as real subprocesses
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger logrus.FieldLogger
}

// NewExecRunner creates a runner that forwards output to the current process
func NewExecRunner(logger logrus.FieldLogger) *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes cmd and waits for it to finish
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if r.Logger != nil {
		r.Logger.WithField("dir", cmd.Dir).Infof("Running: %s", cmd)
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env.Environ()
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	if err := c.Run(); err != nil {
		return fmt.Errorf("running %s: %w", cmd.Path, err)
	}
	return nil
}
