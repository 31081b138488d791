// pkg/library/artifacts.go
package library

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/arc-language/libcairo/pkg/build"
)

// Artifact is a compiled library file
type Artifact struct {
	Name     string // Library name (e.g., "cairo")
	Path     string // Absolute path to the file
	Ext      string // ".so", ".a", ".dylib", ".dll" or ".lib"
	IsStatic bool   // True for .a files and Windows .lib files
}

// LibraryExtensions returns the file extensions of compiled libraries
// for the context's platform
func LibraryExtensions(bc *build.Context) []string {
	switch {
	case bc.IsWindows():
		return []string{".dll", ".lib"}
	case runtime.GOOS == "darwin":
		return []string{".dylib", ".a"}
	default:
		return []string{".so", ".a"}
	}
}

// FindArtifacts lists the files of lib found in its compiled library
// directories, sorted by path. Versioned shared objects (libcairo.so.2)
// and suffixed variants (cairo-static.lib) are included.
func FindArtifacts(lib Library, bc *build.Context) []Artifact {
	extensions := LibraryExtensions(bc)
	seen := make(map[string]bool)

	var artifacts []Artifact
	for _, dir := range lib.CompiledLibraryDirectories(bc) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !belongsTo(entry.Name(), lib.Name()) {
				continue
			}
			ext := matchExtension(entry.Name(), extensions)
			if ext == "" {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if seen[path] {
				continue
			}
			seen[path] = true

			artifacts = append(artifacts, Artifact{
				Name:     lib.Name(),
				Path:     path,
				Ext:      ext,
				IsStatic: ext == ".a" || ext == ".lib",
			})
		}
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	return artifacts
}

// belongsTo matches lib<name>.* and <name>.* as well as <name>-<variant>.*
func belongsTo(file, name string) bool {
	base := strings.TrimPrefix(file, "lib")
	if !strings.HasPrefix(base, name) {
		return false
	}
	rest := base[len(name):]
	return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "-")
}

func matchExtension(file string, extensions []string) string {
	for _, ext := range extensions {
		if strings.HasSuffix(file, ext) || strings.Contains(file, ext+".") {
			return ext
		}
	}
	return ""
}
