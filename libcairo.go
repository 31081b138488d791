// libcairo.go
package libcairo

import (
	"fmt"
	"os"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/cairo"
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/location"
	"github.com/arc-language/libcairo/pkg/recipe"
)

// Re-export the descriptor types for convenience
type (
	Library      = library.Library
	Descriptor   = library.Descriptor
	Dependencies = library.Dependencies
	Options      = library.Options
	Toolchain    = library.Toolchain
	Context      = build.Context
	Cairo        = cairo.Library
)

// Re-export the context constants
const (
	PlatformUnix    = build.PlatformUnix
	PlatformWindows = build.PlatformWindows
	ProfileDebug    = build.ProfileDebug
	ProfileRelease  = build.ProfileRelease
)

// ReleaseOwner and ReleaseRepository name the GitHub repository that
// publishes prebuilt cairo binaries
const (
	ReleaseOwner      = "feenkcom"
	ReleaseRepository = "libcairo"
)

// New returns the cairo descriptor. A non-empty binaryVersion points the
// release location at the matching tag of the prebuilt binaries repository.
func New(binaryVersion string) *cairo.Library {
	lib := cairo.New()
	if binaryVersion != "" {
		lib.WithReleaseLocation(location.GitHub(ReleaseOwner, ReleaseRepository).WithTag(binaryVersion))
	}
	return lib
}

// NewContext re-exports build.NewContext
func NewContext(buildRoot string, opts ...build.Option) *build.Context {
	return build.NewContext(buildRoot, opts...)
}

// FromRecipe builds a cairo descriptor from a TOML recipe
func FromRecipe(data []byte) (*cairo.Library, error) {
	doc, err := recipe.Decode(data)
	if err != nil {
		return nil, err
	}
	if doc.Name != cairo.Name {
		return nil, fmt.Errorf("%w: recipe is for %q, not %q", ErrConfiguration, doc.Name, cairo.Name)
	}

	source, err := doc.Source.Location()
	if err != nil {
		return nil, err
	}
	deps, err := doc.ResolveDependencies()
	if err != nil {
		return nil, err
	}

	lib := cairo.New().WithSourceLocation(source).WithDependencies(deps)
	lib.SetOptions(doc.Options)

	if doc.Release != nil {
		release, err := doc.Release.Location()
		if err != nil {
			return nil, err
		}
		lib.WithReleaseLocation(release)
	}

	return lib, nil
}

// LoadRecipe reads a recipe file
func LoadRecipe(path string) (*cairo.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	return FromRecipe(data)
}
