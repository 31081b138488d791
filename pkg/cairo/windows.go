// pkg/cairo/windows.go
package cairo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/dependency"
	"github.com/arc-language/libcairo/pkg/patch"
	"github.com/arc-language/libcairo/pkg/shell"
)

func (c *Library) compileWindows(ctx context.Context, bc *build.Context) error {
	p, err := patch.Open(c.SourceDirectory(bc), bc.Logger())
	if err != nil {
		return err
	}

	if err := c.patchWindowsCommonMakefile(p, bc); err != nil {
		return err
	}
	if err := c.patchWindowsFeaturesMakefile(p, bc); err != nil {
		return err
	}
	if err := c.patchWindowsMakefile(p, bc); err != nil {
		return err
	}

	sources := c.SourceDirectory(bc)
	command := shell.Command{
		Path: "make",
		Args: []string{
			"cairo",
			"-f", filepath.Join(sources, "Makefile.win32"),
			"CFG=release",
			"PIXMAN_PATH=" + c.dependency(dependency.PixmanName).NativeLibraryPrefix(bc),
			"ZLIB_PATH=" + c.dependency(dependency.ZlibName).NativeLibraryPrefix(bc),
			"LIBPNG_PATH=" + c.dependency(dependency.PNGName).NativeLibraryPrefix(bc),
		},
		Dir: sources,
		Env: c.tools.Environment(),
	}
	return c.tools.Run(ctx, bc, "compile", Name, command)
}

// patchWindowsCommonMakefile links the static zlib and libpng archives, adds the
// MSVC and freetype search paths and routes shell utilities through coreutils
func (c *Library) patchWindowsCommonMakefile(p *patch.Patcher, bc *build.Context) error {
	freetype := c.dependency(dependency.FreetypeName)

	includePaths := bc.MSVCIncludeDirectories()
	includePaths = append(includePaths, freetype.NativeLibraryIncludeHeaders(bc)...)

	linkPaths := bc.MSVCLibDirectories()
	linkPaths = append(linkPaths, freetype.NativeLibraryLinkerLibraries(bc)...)

	path := filepath.Join(c.SourceDirectory(bc), "build", "Makefile.win32.common")
	return p.Apply(path, func(contents string) string {
		contents = strings.ReplaceAll(contents, "-MD", "-MT")
		contents = strings.ReplaceAll(contents,
			"CAIRO_LIBS += $(ZLIB_PATH)/zdll.lib",
			"CAIRO_LIBS += $(ZLIB_PATH)/lib/zlibstatic.lib")
		contents = strings.ReplaceAll(contents,
			"ZLIB_CFLAGS += -I$(ZLIB_PATH)",
			"ZLIB_CFLAGS += -I$(ZLIB_PATH)/include")
		contents = strings.ReplaceAll(contents,
			"CAIRO_LIBS +=  $(LIBPNG_PATH)/libpng.lib",
			"CAIRO_LIBS +=  $(LIBPNG_PATH)/lib/libpng16_static.lib")
		contents = strings.ReplaceAll(contents,
			"LIBPNG_CFLAGS += -I$(LIBPNG_PATH)/",
			"LIBPNG_CFLAGS += -I$(LIBPNG_PATH)/include")

		contents = strings.ReplaceAll(contents, "@mkdir", "@coreutils mkdir")
		contents = strings.ReplaceAll(contents, "`dirname $<`", `"$(shell coreutils dirname $<)"`)

		const includeFlags = "DEFAULT_CFLAGS += -I. -I$(top_srcdir) -I$(top_srcdir)/src"
		contents = strings.ReplaceAll(contents, includeFlags,
			appendLines(includeFlags, "DEFAULT_CFLAGS += -I\"%s\"", includePaths))

		const ldFlags = "DEFAULT_LDFLAGS = -nologo $(CFG_LDFLAGS)"
		contents = strings.ReplaceAll(contents, ldFlags,
			appendLines(ldFlags, "DEFAULT_LDFLAGS += -LIBPATH:\"%s\"", linkPaths))

		contents = strings.ReplaceAll(contents,
			"CAIRO_LIBS =  gdi32.lib msimg32.lib user32.lib",
			"CAIRO_LIBS =  gdi32.lib msimg32.lib user32.lib freetype.lib")

		return contents
	})
}

// appendLines renders one line per path after line
func appendLines(line, format string, paths []string) string {
	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		lines = append(lines, fmt.Sprintf(format, path))
	}
	return line + "\n" + strings.Join(lines, "\n")
}

// patchWindowsFeaturesMakefile enables the freetype font backend
func (c *Library) patchWindowsFeaturesMakefile(p *patch.Patcher, bc *build.Context) error {
	dir := filepath.Join(c.SourceDirectory(bc), "build")

	err := p.Apply(filepath.Join(dir, "Makefile.win32.features-h"), func(contents string) string {
		return strings.ReplaceAll(contents, "@echo", "@coreutils echo")
	})
	if err != nil {
		return err
	}

	return p.Apply(filepath.Join(dir, "Makefile.win32.features"), func(contents string) string {
		return strings.ReplaceAll(contents, "CAIRO_HAS_FT_FONT=0", "CAIRO_HAS_FT_FONT=1")
	})
}

// patchWindowsMakefile drops the header listing loop, which needs a POSIX shell
func (c *Library) patchWindowsMakefile(p *patch.Patcher, bc *build.Context) error {
	path := filepath.Join(c.SourceDirectory(bc), "src", "Makefile.win32")
	return p.Apply(path, func(contents string) string {
		return strings.ReplaceAll(contents,
			"@for x in $(enabled_cairo_headers); do echo \"\tsrc/$$x\"; done",
			"")
	})
}
