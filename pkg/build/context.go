// pkg/build/context.go
package build

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Platform is the family of the target the libraries are compiled for
type Platform string

const (
	// PlatformUnix builds with configure and make install
	PlatformUnix Platform = "unix"
	// PlatformWindows builds with the MSVC makefiles shipped in the sources
	PlatformWindows Platform = "windows"
)

// Profile selects the build configuration
type Profile string

const (
	ProfileDebug   Profile = "debug"
	ProfileRelease Profile = "release"
)

// HostPlatform returns the platform family of the running process
func HostPlatform() Platform {
	if runtime.GOOS == "windows" {
		return PlatformWindows
	}
	return PlatformUnix
}

// Context is the configuration shared by every library of one build.
// It is immutable once created; use NewContext to construct it.
type Context struct {
	platform        Platform
	buildRoot       string
	sourcesRoot     string
	profile         Profile
	msvcIncludeDirs []string
	msvcLibDirs     []string
	logger          logrus.FieldLogger
}

// Option configures a Context during construction
type Option func(*Context)

// WithPlatform overrides the host platform
func WithPlatform(p Platform) Option {
	return func(c *Context) { c.platform = p }
}

// WithProfile selects debug or release
func WithProfile(p Profile) Option {
	return func(c *Context) { c.profile = p }
}

// WithSourcesRoot sets where library sources are resolved to.
// Defaults to <build-root>/sources.
func WithSourcesRoot(dir string) Option {
	return func(c *Context) { c.sourcesRoot = dir }
}

// WithMSVCDirectories sets the Windows SDK/MSVC include and lib search directories
func WithMSVCDirectories(includes, libs []string) Option {
	return func(c *Context) {
		c.msvcIncludeDirs = append([]string(nil), includes...)
		c.msvcLibDirs = append([]string(nil), libs...)
	}
}

// WithLogger sets the logger used by build steps
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Context) { c.logger = l }
}

// NewContext creates a compilation context rooted at buildRoot
func NewContext(buildRoot string, opts ...Option) *Context {
	c := &Context{
		platform:  HostPlatform(),
		buildRoot: filepath.Clean(buildRoot),
		profile:   ProfileRelease,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.sourcesRoot == "" {
		c.sourcesRoot = filepath.Join(c.buildRoot, "sources")
	}
	if c.msvcIncludeDirs == nil && c.msvcLibDirs == nil && c.platform == PlatformWindows {
		// The MSVC developer prompt exports the SDK search paths as INCLUDE and LIB
		c.msvcIncludeDirs = splitList(os.Getenv("INCLUDE"))
		c.msvcLibDirs = splitList(os.Getenv("LIB"))
	}
	if c.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		c.logger = discard
	}

	return c
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var dirs []string
	for _, dir := range filepath.SplitList(value) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (c *Context) Platform() Platform { return c.platform }

func (c *Context) IsUnix() bool { return c.platform == PlatformUnix }

func (c *Context) IsWindows() bool { return c.platform == PlatformWindows }

// BuildRoot is the directory under which library prefixes are created
func (c *Context) BuildRoot() string { return c.buildRoot }

// SourcesRoot is the directory under which library sources are resolved
func (c *Context) SourcesRoot() string { return c.sourcesRoot }

func (c *Context) Profile() Profile { return c.profile }

// SourceDirectory returns where the sources of the named library live
func (c *Context) SourceDirectory(name string) string {
	return filepath.Join(c.sourcesRoot, name)
}

// MSVCIncludeDirectories returns a copy of the MSVC include search directories
func (c *Context) MSVCIncludeDirectories() []string {
	return append([]string(nil), c.msvcIncludeDirs...)
}

// MSVCLibDirectories returns a copy of the MSVC library search directories
func (c *Context) MSVCLibDirectories() []string {
	return append([]string(nil), c.msvcLibDirs...)
}

func (c *Context) Logger() logrus.FieldLogger { return c.logger }
