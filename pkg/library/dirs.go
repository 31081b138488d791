// pkg/library/dirs.go
package library

import (
	"os"
	"path/filepath"

	"github.com/arc-language/libcairo/pkg/build"
)

// ExistingDirs keeps only the paths that are existing directories
func ExistingDirs(paths ...string) []string {
	var dirs []string
	for _, path := range paths {
		if IsDir(path) {
			dirs = append(dirs, path)
		}
	}
	return dirs
}

// IsDir reports whether path is an existing directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// PrefixIncludeHeaders returns <prefix>/include if it exists
func PrefixIncludeHeaders(d Descriptor, bc *build.Context) []string {
	return ExistingDirs(filepath.Join(d.NativeLibraryPrefix(bc), "include"))
}

// PrefixLinkerLibraries returns <prefix>/lib if it exists
func PrefixLinkerLibraries(d Descriptor, bc *build.Context) []string {
	return ExistingDirs(filepath.Join(d.NativeLibraryPrefix(bc), "lib"))
}

// PrefixPkgConfigDirectory returns <prefix>/lib/pkgconfig if it exists
func PrefixPkgConfigDirectory(d Descriptor, bc *build.Context) (string, bool) {
	dir := filepath.Join(d.NativeLibraryPrefix(bc), "lib", "pkgconfig")
	if IsDir(dir) {
		return dir, true
	}
	return "", false
}
