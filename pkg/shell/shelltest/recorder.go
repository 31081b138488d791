// Package shelltest provides a recording Runner for tests.
package shelltest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arc-language/libcairo/pkg/shell"
)

// Recorder records every command and fails those whose executable base name
// is listed in Fail.
type Recorder struct {
	Commands []shell.Command
	Fail     map[string]bool
}

// NewRecorder creates a recorder that fails the named executables
func NewRecorder(fail ...string) *Recorder {
	r := &Recorder{Fail: make(map[string]bool)}
	for _, name := range fail {
		r.Fail[name] = true
	}
	return r
}

func (r *Recorder) Run(ctx context.Context, cmd shell.Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.Fail[filepath.Base(cmd.Path)] {
		return fmt.Errorf("running %s: exit status 1", cmd.Path)
	}
	return nil
}

// Names returns the executable base names in invocation order
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.Commands))
	for _, cmd := range r.Commands {
		names = append(names, filepath.Base(cmd.Path))
	}
	return names
}
