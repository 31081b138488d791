// pkg/location/location.go
package location

import (
	"context"
	"fmt"
	"os"

	"github.com/arc-language/libcairo/pkg/build"
)

// Kind identifies the variant of a Location
type Kind string

const (
	KindTar  Kind = "tar"
	KindGit  Kind = "git"
	KindPath Kind = "path"
)

// Location describes where the sources (or a prebuilt release) of a library come from
type Location interface {
	// Kind returns the variant of the location
	Kind() Kind

	// EnsureSources populates dir with the sources. An existing non-empty
	// dir is assumed to be populated and is left untouched.
	EnsureSources(ctx context.Context, dir string, bc *build.Context) error

	// String describes the location for logs
	String() string
}

// populated reports whether dir exists and has at least one entry
func populated(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}
	return len(entries) > 0, nil
}

func unavailable(loc Location, err error) error {
	return &build.Error{
		Op:  "resolving sources",
		Err: fmt.Errorf("%w: %s: %w", build.ErrSourceUnavailable, loc, err),
	}
}
