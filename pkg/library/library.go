// pkg/library/library.go
package library

import (
	"context"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/location"
)

// Descriptor is what a dependent needs to know about a library to compile
// against it
type Descriptor interface {
	// Name returns the unique name of the library (e.g., "cairo")
	Name() string

	// NativeLibraryPrefix returns the install root of the library.
	// It depends only on the context.
	NativeLibraryPrefix(bc *build.Context) string

	// NativeLibraryIncludeHeaders returns the existing header directories
	NativeLibraryIncludeHeaders(bc *build.Context) []string

	// NativeLibraryLinkerLibraries returns the existing library directories
	NativeLibraryLinkerLibraries(bc *build.Context) []string

	// PkgConfigDirectory returns the pkg-config directory if it exists
	PkgConfigDirectory(bc *build.Context) (string, bool)
}

// Library is the declarative description of one native library: where its
// sources come from, what it depends on and how it is compiled
type Library interface {
	Descriptor

	// Location returns where the sources come from
	Location() location.Location

	// ReleaseLocation returns where prebuilt releases come from,
	// falling back to the source location
	ReleaseLocation() location.Location

	// Dependencies returns the libraries this one is compiled against
	Dependencies() Dependencies

	// Options returns the compile-time options
	Options() Options

	// SetOptions replaces the compile-time options
	SetOptions(opts Options)

	// EnsureSources resolves the sources into the source directory
	EnsureSources(ctx context.Context, bc *build.Context) error

	// EnsureRequirements checks for the tools and directories the build needs
	EnsureRequirements(bc *build.Context) error

	// ForceCompile builds and installs the library unconditionally
	ForceCompile(ctx context.Context, bc *build.Context) error

	// CompiledLibraryDirectories returns where the artifacts are.
	// Only meaningful after ForceCompile succeeded.
	CompiledLibraryDirectories(bc *build.Context) []string

	// Clone returns an independent copy of the descriptor
	Clone() Library
}

// Options holds compile-time options of a library
type Options struct {
	Static bool   `toml:"static" yaml:"static"`
	Target string `toml:"target,omitempty" yaml:"target,omitempty"`
}
