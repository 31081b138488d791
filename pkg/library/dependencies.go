// pkg/library/dependencies.go
package library

import (
	"strings"

	"github.com/arc-language/libcairo/pkg/build"
)

// Dependencies is an ordered list of libraries. Order is declaration order
// and is preserved by every accessor.
type Dependencies []Library

// NewDependencies creates a dependency list
func NewDependencies(libs ...Library) Dependencies {
	return append(Dependencies(nil), libs...)
}

// Push returns the list with lib appended
func (d Dependencies) Push(lib Library) Dependencies {
	return append(d, lib)
}

// Names returns the dependency names in order
func (d Dependencies) Names() []string {
	names := make([]string, 0, len(d))
	for _, lib := range d {
		names = append(names, lib.Name())
	}
	return names
}

// Find returns the dependency with the given name
func (d Dependencies) Find(name string) (Library, bool) {
	for _, lib := range d {
		if lib.Name() == name {
			return lib, true
		}
	}
	return nil, false
}

// Clone deep-copies the list
func (d Dependencies) Clone() Dependencies {
	if d == nil {
		return nil
	}
	cloned := make(Dependencies, 0, len(d))
	for _, lib := range d {
		cloned = append(cloned, lib.Clone())
	}
	return cloned
}

// IncludeHeaders returns every existing header directory of every dependency
func (d Dependencies) IncludeHeaders(bc *build.Context) []string {
	var dirs []string
	for _, lib := range d {
		dirs = append(dirs, lib.NativeLibraryIncludeHeaders(bc)...)
	}
	return dirs
}

// LinkerLibraries returns every existing library directory of every dependency
func (d Dependencies) LinkerLibraries(bc *build.Context) []string {
	var dirs []string
	for _, lib := range d {
		dirs = append(dirs, lib.NativeLibraryLinkerLibraries(bc)...)
	}
	return dirs
}

// PkgConfigDirectories returns the existing pkg-config directories
func (d Dependencies) PkgConfigDirectories(bc *build.Context) []string {
	var dirs []string
	for _, lib := range d {
		if dir, ok := lib.PkgConfigDirectory(bc); ok {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// AllPkgConfigDirectories returns the existing pkg-config directories of the
// whole dependency graph, depth first in declaration order: each dependency
// before its own dependencies. Duplicates are kept.
func (d Dependencies) AllPkgConfigDirectories(bc *build.Context) []string {
	var dirs []string
	for _, lib := range d {
		if dir, ok := lib.PkgConfigDirectory(bc); ok {
			dirs = append(dirs, dir)
		}
		dirs = append(dirs, lib.Dependencies().AllPkgConfigDirectories(bc)...)
	}
	return dirs
}

// IncludeHeadersFlags renders IncludeHeaders as space separated -I flags.
// Duplicates are kept.
func (d Dependencies) IncludeHeadersFlags(bc *build.Context) string {
	return flags("-I", d.IncludeHeaders(bc))
}

// LinkerLibrariesFlags renders LinkerLibraries as space separated -L flags
func (d Dependencies) LinkerLibrariesFlags(bc *build.Context) string {
	return flags("-L", d.LinkerLibraries(bc))
}

func flags(prefix string, dirs []string) string {
	parts := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		parts = append(parts, prefix+dir)
	}
	return strings.Join(parts, " ")
}
