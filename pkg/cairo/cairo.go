// pkg/cairo/cairo.go
package cairo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/dependency"
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/location"
	"github.com/arc-language/libcairo/pkg/patch"
)

const (
	// Name is the library name; it also names the prefix and source directories
	Name = "cairo"

	// Version is the cairo release the recipe builds
	Version = "1.17.4"

	// SourceURL is where the release tarball is downloaded from
	SourceURL = "https://dl.feenk.com/cairo/cairo-1.17.4.tar.xz"
)

// Library is the cairo descriptor
type Library struct {
	source       location.Location
	release      location.Location
	dependencies library.Dependencies
	options      library.Options
	tools        library.Toolchain
}

// New creates the cairo descriptor: the 1.17.4 tarball, compiled against
// pixman and freetype
func New() *Library {
	return &Library{
		source: location.NewTarURL(SourceURL).
			WithArchive(location.ArchiveXz).
			WithSources("cairo-" + Version),
		dependencies: library.NewDependencies(
			dependency.Pixman(),
			dependency.Freetype(),
		),
	}
}

// WithReleaseLocation sets where prebuilt releases come from; nil clears it
func (c *Library) WithReleaseLocation(loc location.Location) *Library {
	c.release = loc
	return c
}

// WithSourceLocation replaces where the sources come from
func (c *Library) WithSourceLocation(loc location.Location) *Library {
	c.source = loc
	return c
}

// WithDependencies replaces the dependency list
func (c *Library) WithDependencies(deps library.Dependencies) *Library {
	c.dependencies = deps
	library.PropagateToolchain(deps, c.tools)
	return c
}

// WithToolchain sets the environment, runner and lookup used by cairo and its
// dependencies
func (c *Library) WithToolchain(t library.Toolchain) *Library {
	c.SetToolchain(t)
	return c
}

func (c *Library) SetToolchain(t library.Toolchain) {
	c.tools = t
	library.PropagateToolchain(c.dependencies, t)
}

func (c *Library) Name() string { return Name }

func (c *Library) Location() location.Location { return c.source }

func (c *Library) ReleaseLocation() location.Location {
	if c.release != nil {
		return c.release
	}
	return c.source
}

// HasReleaseLocation reports whether a release location was set explicitly
func (c *Library) HasReleaseLocation() bool {
	return c.release != nil
}

func (c *Library) Dependencies() library.Dependencies { return c.dependencies }

func (c *Library) Options() library.Options { return c.options }

func (c *Library) SetOptions(opts library.Options) { c.options = opts }

// SourceDirectory is where the cairo sources are resolved to
func (c *Library) SourceDirectory(bc *build.Context) string {
	return bc.SourceDirectory(Name)
}

func (c *Library) EnsureSources(ctx context.Context, bc *build.Context) error {
	return c.source.EnsureSources(ctx, c.SourceDirectory(bc), bc)
}

// ForceCompile runs the Unix or Windows build, depending on the context
func (c *Library) ForceCompile(ctx context.Context, bc *build.Context) error {
	var err error
	switch {
	case bc.IsUnix():
		err = c.compileUnix(ctx, bc)
	case bc.IsWindows():
		err = c.compileWindows(ctx, bc)
	default:
		err = &build.Error{
			Op:      "compile",
			Library: Name,
			Err:     fmt.Errorf("%w: %q", build.ErrPlatformNotSupported, bc.Platform()),
		}
	}
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", Name, err)
	}
	return nil
}

// CompiledLibraryDirectories returns <prefix>/lib on Unix and
// <prefix>/src/<profile> on Windows
func (c *Library) CompiledLibraryDirectories(bc *build.Context) []string {
	switch {
	case bc.IsUnix():
		return []string{filepath.Join(c.NativeLibraryPrefix(bc), "lib")}
	case bc.IsWindows():
		return []string{filepath.Join(c.NativeLibraryPrefix(bc), "src", string(bc.Profile()))}
	default:
		return nil
	}
}

// EnsureRequirements checks for make, the autotools on Unix, and coreutils
// plus the MSVC search directories on Windows
func (c *Library) EnsureRequirements(bc *build.Context) error {
	checker := c.tools.Checker()

	err := checker.Executables("make")
	if err == nil && bc.IsUnix() {
		err = checker.Executables("autoreconf", "aclocal")
	}
	if err == nil && bc.IsWindows() {
		err = checker.Executables("coreutils")
		if err == nil {
			err = checker.Directories("Lib", bc.MSVCLibDirectories()...)
		}
		if err == nil {
			err = checker.Directories("Include", bc.MSVCIncludeDirectories()...)
		}
	}

	if err != nil {
		return &build.Error{Op: "checking requirements of", Library: Name, Err: err}
	}
	return nil
}

// NativeLibraryPrefix is <build-root>/cairo on Unix. On Windows the library is
// built inside its source tree, so the prefix is the source directory.
func (c *Library) NativeLibraryPrefix(bc *build.Context) string {
	if bc.IsWindows() {
		return c.SourceDirectory(bc)
	}
	return filepath.Join(bc.BuildRoot(), Name)
}

func (c *Library) NativeLibraryIncludeHeaders(bc *build.Context) []string {
	return library.PrefixIncludeHeaders(c, bc)
}

func (c *Library) NativeLibraryLinkerLibraries(bc *build.Context) []string {
	return library.PrefixLinkerLibraries(c, bc)
}

func (c *Library) PkgConfigDirectory(bc *build.Context) (string, bool) {
	return library.PrefixPkgConfigDirectory(c, bc)
}

func (c *Library) Clone() library.Library {
	cloned := *c
	cloned.dependencies = c.dependencies.Clone()
	return &cloned
}

// ResetPatches restores every source file patched by a previous build
func (c *Library) ResetPatches(bc *build.Context) ([]string, error) {
	p, err := patch.Open(c.SourceDirectory(bc), bc.Logger())
	if err != nil {
		return nil, err
	}
	restored := p.Patched()
	if err := p.ResetAll(); err != nil {
		return nil, err
	}
	return restored, nil
}

// dependency finds a library by name in the dependency graph, falling back to
// a fresh descriptor; prefixes depend only on the name and the context
func (c *Library) dependency(name string) library.Library {
	if lib, ok := find(c.dependencies, name); ok {
		return lib
	}
	lib, _ := dependency.ByName(name)
	return lib
}

func find(deps library.Dependencies, name string) (library.Library, bool) {
	if lib, ok := deps.Find(name); ok {
		return lib, true
	}
	for _, dep := range deps {
		if lib, ok := find(dep.Dependencies(), name); ok {
			return lib, true
		}
	}
	return nil, false
}
