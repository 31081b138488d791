package library_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/location"
)

// fakeLibrary installs under <build-root>/<name> and records what it was asked to do
type fakeLibrary struct {
	name    string
	deps    library.Dependencies
	events  *[]string
	failOn  string
	options library.Options
}

func newFake(name string, events *[]string, deps ...library.Library) *fakeLibrary {
	return &fakeLibrary{name: name, deps: library.NewDependencies(deps...), events: events}
}

func (f *fakeLibrary) record(event string) error {
	*f.events = append(*f.events, event+" "+f.name)
	if event == f.failOn {
		return errors.New(event + " failed")
	}
	return nil
}

func (f *fakeLibrary) Name() string { return f.name }
func (f *fakeLibrary) Location() location.Location { return location.NewPath("/src/" + f.name) }
func (f *fakeLibrary) ReleaseLocation() location.Location { return f.Location() }
func (f *fakeLibrary) Dependencies() library.Dependencies { return f.deps }
func (f *fakeLibrary) Options() library.Options { return f.options }
func (f *fakeLibrary) SetOptions(opts library.Options) { f.options = opts }
func (f *fakeLibrary) EnsureRequirements(*build.Context) error { return f.record("requirements") }

func (f *fakeLibrary) EnsureSources(context.Context, *build.Context) error {
	return f.record("sources")
}

func (f *fakeLibrary) ForceCompile(context.Context, *build.Context) error {
	return f.record("compile")
}

func (f *fakeLibrary) CompiledLibraryDirectories(bc *build.Context) []string {
	return []string{filepath.Join(f.NativeLibraryPrefix(bc), "lib")}
}

func (f *fakeLibrary) NativeLibraryPrefix(bc *build.Context) string {
	return filepath.Join(bc.BuildRoot(), f.name)
}

func (f *fakeLibrary) NativeLibraryIncludeHeaders(bc *build.Context) []string {
	return library.PrefixIncludeHeaders(f, bc)
}

func (f *fakeLibrary) NativeLibraryLinkerLibraries(bc *build.Context) []string {
	return library.PrefixLinkerLibraries(f, bc)
}

func (f *fakeLibrary) PkgConfigDirectory(bc *build.Context) (string, bool) {
	return library.PrefixPkgConfigDirectory(f, bc)
}

func (f *fakeLibrary) Clone() library.Library {
	cloned := *f
	cloned.deps = f.deps.Clone()
	return &cloned
}

func mkdirs(t *testing.T, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
}

func TestIncludeHeadersFlagsSkipMissingDirectories(t *testing.T) {
	root := t.TempDir()
	bc := build.NewContext(root, build.WithPlatform(build.PlatformUnix))
	var events []string

	deps := library.NewDependencies(
		newFake("pixman", &events),
		newFake("freetype", &events),
		newFake("zlib", &events),
	)
	mkdirs(t,
		filepath.Join(root, "zlib", "include"),
		filepath.Join(root, "pixman", "include"),
		filepath.Join(root, "freetype", "lib", "pkgconfig"),
	)

	assert.Equal(t,
		"-I"+filepath.Join(root, "pixman", "include")+" -I"+filepath.Join(root, "zlib", "include"),
		deps.IncludeHeadersFlags(bc))
	assert.Equal(t, "-L"+filepath.Join(root, "freetype", "lib"), deps.LinkerLibrariesFlags(bc))
	assert.Equal(t, []string{filepath.Join(root, "freetype", "lib", "pkgconfig")}, deps.PkgConfigDirectories(bc))
}

func TestFlagsKeepDuplicates(t *testing.T) {
	root := t.TempDir()
	bc := build.NewContext(root, build.WithPlatform(build.PlatformUnix))
	var events []string
	zlib := newFake("zlib", &events)
	mkdirs(t, filepath.Join(root, "zlib", "lib"))

	deps := library.NewDependencies(zlib, zlib.Clone())

	lib := filepath.Join(root, "zlib", "lib")
	assert.Equal(t, "-L"+lib+" -L"+lib, deps.LinkerLibrariesFlags(bc))
}

func TestAllPkgConfigDirectoriesWalksTheGraph(t *testing.T) {
	root := t.TempDir()
	bc := build.NewContext(root, build.WithPlatform(build.PlatformUnix))
	var events []string

	zlib := newFake("zlib", &events)
	png := newFake("libpng", &events, zlib)
	freetype := newFake("freetype", &events, png, zlib.Clone())
	deps := library.NewDependencies(newFake("pixman", &events), freetype)

	pc := func(name string) string { return filepath.Join(root, name, "lib", "pkgconfig") }
	mkdirs(t, pc("freetype"), pc("libpng"), pc("zlib"))

	assert.Equal(t, []string{pc("freetype")}, deps.PkgConfigDirectories(bc))
	assert.Equal(t,
		[]string{pc("freetype"), pc("libpng"), pc("zlib"), pc("zlib")},
		deps.AllPkgConfigDirectories(bc))
	assert.Empty(t, library.Dependencies(nil).AllPkgConfigDirectories(bc))
}

func TestEmptyDependencies(t *testing.T) {
	bc := build.NewContext(t.TempDir())
	var deps library.Dependencies

	assert.Equal(t, "", deps.IncludeHeadersFlags(bc))
	assert.Equal(t, "", deps.LinkerLibrariesFlags(bc))
	assert.Empty(t, deps.PkgConfigDirectories(bc))
	assert.Empty(t, deps.Names())
}

func TestPkgConfigDirectoryOnlyWhenPresent(t *testing.T) {
	root := t.TempDir()
	bc := build.NewContext(root)
	var events []string
	lib := newFake("cairo", &events)

	_, ok := lib.PkgConfigDirectory(bc)
	assert.False(t, ok)

	mkdirs(t, filepath.Join(root, "cairo", "lib", "pkgconfig"))
	dir, ok := lib.PkgConfigDirectory(bc)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "cairo", "lib", "pkgconfig"), dir)
}

func TestCompileOrder(t *testing.T) {
	bc := build.NewContext(t.TempDir())
	var events []string

	zlib := newFake("zlib", &events)
	png := newFake("libpng", &events, zlib)
	freetype := newFake("freetype", &events, png, zlib)
	pixman := newFake("pixman", &events)
	cairo := newFake("cairo", &events, pixman, freetype)

	require.NoError(t, library.Compile(context.Background(), cairo, bc))

	assert.Equal(t, []string{
		"sources pixman", "requirements pixman", "compile pixman",
		"sources zlib", "requirements zlib", "compile zlib",
		"sources libpng", "requirements libpng", "compile libpng",
		"sources freetype", "requirements freetype", "compile freetype",
		"sources cairo", "requirements cairo", "compile cairo",
	}, events)
}

// prebuiltFake is a fakeLibrary whose prefix is already installed
type prebuiltFake struct {
	*fakeLibrary
}

func (p prebuiltFake) IsPrebuilt(*build.Context) bool { return true }

func TestCompileSkipsSourcesOfPrebuiltLibraries(t *testing.T) {
	bc := build.NewContext(t.TempDir())
	var events []string

	zlib := prebuiltFake{newFake("zlib", &events)}
	cairo := newFake("cairo", &events, zlib)

	require.NoError(t, library.Compile(context.Background(), cairo, bc))
	assert.Equal(t, []string{
		"requirements zlib", "compile zlib",
		"sources cairo", "requirements cairo", "compile cairo",
	}, events)
}

func TestCompileStopsAtFirstFailure(t *testing.T) {
	bc := build.NewContext(t.TempDir())
	var events []string

	pixman := newFake("pixman", &events)
	pixman.failOn = "requirements"
	cairo := newFake("cairo", &events, pixman)

	err := library.Compile(context.Background(), cairo, bc)
	require.Error(t, err)
	assert.Equal(t, []string{"sources pixman", "requirements pixman"}, events)
}

func TestCompileDetectsCycles(t *testing.T) {
	bc := build.NewContext(t.TempDir())
	var events []string

	a := newFake("a", &events)
	b := newFake("b", &events, a)
	a.deps = library.NewDependencies(b)

	err := library.Compile(context.Background(), a, bc)
	require.ErrorIs(t, err, build.ErrConfiguration)
	assert.Empty(t, events)
}

func TestCloneIsIndependent(t *testing.T) {
	var events []string
	deps := library.NewDependencies(newFake("pixman", &events))

	cloned := deps.Clone()
	cloned[0].SetOptions(library.Options{Static: true})

	assert.False(t, deps[0].Options().Static)
	assert.True(t, cloned[0].Options().Static)
}
