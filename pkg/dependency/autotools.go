// pkg/dependency/autotools.go
package dependency

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/location"
	"github.com/arc-language/libcairo/pkg/shell"
)

// Autotools describes a library built with `configure && make install`.
// On Windows it only consumes a prebuilt prefix.
type Autotools struct {
	name          string
	source        location.Location
	release       location.Location
	dependencies  library.Dependencies
	options       library.Options
	configureArgs []string
	staticArgs    []string
	tools         library.Toolchain
}

// NewAutotools creates a descriptor for the named library
func NewAutotools(name string, source location.Location) *Autotools {
	return &Autotools{
		name:   name,
		source: source,
	}
}

// WithDependencies sets the libraries this one compiles against
func (a *Autotools) WithDependencies(deps ...library.Library) *Autotools {
	a.dependencies = library.NewDependencies(deps...)
	return a
}

// WithConfigureArgs adds arguments passed to configure after --prefix
func (a *Autotools) WithConfigureArgs(args ...string) *Autotools {
	a.configureArgs = append(a.configureArgs, args...)
	return a
}

// WithStaticArgs sets the configure arguments used when Options.Static is set
func (a *Autotools) WithStaticArgs(args ...string) *Autotools {
	a.staticArgs = append([]string(nil), args...)
	return a
}

// WithReleaseLocation sets where prebuilt releases come from
func (a *Autotools) WithReleaseLocation(loc location.Location) *Autotools {
	a.release = loc
	return a
}

// WithToolchain sets the environment, runner and lookup used to build
// this library and its dependencies
func (a *Autotools) WithToolchain(t library.Toolchain) *Autotools {
	a.SetToolchain(t)
	return a
}

func (a *Autotools) SetToolchain(t library.Toolchain) {
	a.tools = t
	library.PropagateToolchain(a.dependencies, t)
}

func (a *Autotools) Name() string { return a.name }

func (a *Autotools) Location() location.Location { return a.source }

func (a *Autotools) ReleaseLocation() location.Location {
	if a.release != nil {
		return a.release
	}
	return a.source
}

func (a *Autotools) Dependencies() library.Dependencies { return a.dependencies }

func (a *Autotools) Options() library.Options { return a.options }

func (a *Autotools) SetOptions(opts library.Options) { a.options = opts }

func (a *Autotools) SourceDirectory(bc *build.Context) string {
	return bc.SourceDirectory(a.name)
}

func (a *Autotools) EnsureSources(ctx context.Context, bc *build.Context) error {
	return a.source.EnsureSources(ctx, a.SourceDirectory(bc), bc)
}

// IsPrebuilt reports whether a Windows build can use an installed prefix
func (a *Autotools) IsPrebuilt(bc *build.Context) bool {
	return bc.IsWindows() && library.IsDir(filepath.Join(a.NativeLibraryPrefix(bc), "lib"))
}

func (a *Autotools) EnsureRequirements(bc *build.Context) error {
	if bc.IsWindows() {
		return nil
	}
	return a.tools.Checker().Executables("make")
}

// ForceCompile configures and installs the library into its prefix.
// On Windows an existing prebuilt prefix is accepted as is.
func (a *Autotools) ForceCompile(ctx context.Context, bc *build.Context) error {
	prefix := a.NativeLibraryPrefix(bc)

	switch {
	case bc.IsUnix():
	case bc.IsWindows():
		if a.IsPrebuilt(bc) {
			bc.Logger().Infof("Using prebuilt %s from %s", a.name, prefix)
			return nil
		}
		fallthrough
	default:
		return &build.Error{
			Op:      "compile",
			Library: a.name,
			Err:     fmt.Errorf("%w: %s", build.ErrPlatformNotSupported, bc.Platform()),
		}
	}

	if err := os.MkdirAll(prefix, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", prefix, err)
	}

	env := a.environment(bc)

	args := []string{"--prefix=" + prefix}
	if a.options.Static {
		args = append(args, a.staticArgs...)
	}
	args = append(args, a.configureArgs...)

	sources := a.SourceDirectory(bc)
	configure := shell.Command{
		Path: filepath.Join(sources, "configure"),
		Args: args,
		Dir:  sources,
		Env:  env,
	}
	if err := a.tools.Run(ctx, bc, "configure", a.name, configure); err != nil {
		return err
	}

	install := shell.Command{
		Path: "make",
		Args: []string{"install"},
		Dir:  sources,
		Env:  env,
	}
	return a.tools.Run(ctx, bc, "compile", a.name, install)
}

func (a *Autotools) environment(bc *build.Context) shell.Environment {
	base := a.tools.Environment()

	pkgConfig := a.dependencies.PkgConfigDirectories(bc)
	pkgConfig = append(pkgConfig, base.SplitList("PKG_CONFIG_PATH")...)

	env := base.With("PKG_CONFIG_PATH", shell.JoinList(pkgConfig))
	env = env.WithAppended("CPPFLAGS", a.dependencies.IncludeHeadersFlags(bc))
	env = env.WithAppended("LDFLAGS", a.dependencies.LinkerLibrariesFlags(bc))
	return env
}

func (a *Autotools) CompiledLibraryDirectories(bc *build.Context) []string {
	return []string{filepath.Join(a.NativeLibraryPrefix(bc), "lib")}
}

func (a *Autotools) NativeLibraryPrefix(bc *build.Context) string {
	return filepath.Join(bc.BuildRoot(), a.name)
}

func (a *Autotools) NativeLibraryIncludeHeaders(bc *build.Context) []string {
	return library.PrefixIncludeHeaders(a, bc)
}

func (a *Autotools) NativeLibraryLinkerLibraries(bc *build.Context) []string {
	return library.PrefixLinkerLibraries(a, bc)
}

func (a *Autotools) PkgConfigDirectory(bc *build.Context) (string, bool) {
	return library.PrefixPkgConfigDirectory(a, bc)
}

func (a *Autotools) Clone() library.Library {
	cloned := *a
	cloned.dependencies = a.dependencies.Clone()
	cloned.configureArgs = append([]string(nil), a.configureArgs...)
	cloned.staticArgs = append([]string(nil), a.staticArgs...)
	return &cloned
}
