package cairo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/patch"
	"github.com/arc-language/libcairo/pkg/shell"
	"github.com/arc-language/libcairo/pkg/shell/shelltest"
)

const commonMakefile = `DEFAULT_CFLAGS += -I. -I$(top_srcdir) -I$(top_srcdir)/src
DEFAULT_LDFLAGS = -nologo $(CFG_LDFLAGS)
CFLAGS = -MD
CAIRO_LIBS =  gdi32.lib msimg32.lib user32.lib
CAIRO_LIBS += $(ZLIB_PATH)/zdll.lib
ZLIB_CFLAGS += -I$(ZLIB_PATH)
CAIRO_LIBS +=  $(LIBPNG_PATH)/libpng.lib
LIBPNG_CFLAGS += -I$(LIBPNG_PATH)/
	@mkdir -p $(CFG)/` + "`dirname $<`" + `
`

const sourcesMakefile = "headers:\n\t@for x in $(enabled_cairo_headers); do echo \"\tsrc/$$x\"; done\n"

func windowsFixture(t *testing.T) (*Library, *build.Context, *shelltest.Recorder, string, string) {
	t.Helper()
	root := t.TempDir()
	sdk := t.TempDir()
	bc := build.NewContext(root,
		build.WithPlatform(build.PlatformWindows),
		build.WithMSVCDirectories([]string{filepath.Join(sdk, "include")}, []string{filepath.Join(sdk, "lib")}),
	)

	sources := bc.SourceDirectory(Name)
	writeFile(t, filepath.Join(sources, "build", "Makefile.win32.common"), commonMakefile)
	writeFile(t, filepath.Join(sources, "build", "Makefile.win32.features-h"), "\t@echo \"#define CAIRO_FEATURES_H\"\n")
	writeFile(t, filepath.Join(sources, "build", "Makefile.win32.features"), "CAIRO_HAS_FT_FONT=0\n")
	writeFile(t, filepath.Join(sources, "src", "Makefile.win32"), sourcesMakefile)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "freetype", "include"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "freetype", "lib"), 0755))

	rec := shelltest.NewRecorder()
	lib := New().WithToolchain(library.Toolchain{
		Env:    shell.FromList([]string{"PATH=C:\\tools"}),
		Runner: rec,
	})
	return lib, bc, rec, root, sdk
}

func TestCompileWindows(t *testing.T) {
	lib, bc, rec, root, sdk := windowsFixture(t)
	sources := bc.SourceDirectory(Name)

	require.NoError(t, lib.ForceCompile(context.Background(), bc))

	require.Len(t, rec.Commands, 1)
	cmd := rec.Commands[0]
	assert.Equal(t, "make", cmd.Path)
	assert.Equal(t, sources, cmd.Dir)
	assert.Equal(t, []string{
		"cairo",
		"-f", filepath.Join(sources, "Makefile.win32"),
		"CFG=release",
		"PIXMAN_PATH=" + filepath.Join(root, "pixman"),
		"ZLIB_PATH=" + filepath.Join(root, "zlib"),
		"LIBPNG_PATH=" + filepath.Join(root, "libpng"),
	}, cmd.Args)

	common := readFile(t, filepath.Join(sources, "build", "Makefile.win32.common"))
	assert.Contains(t, common, "CFLAGS = -MT")
	assert.NotContains(t, common, "-MD")
	assert.Contains(t, common, "CAIRO_LIBS += $(ZLIB_PATH)/lib/zlibstatic.lib")
	assert.Contains(t, common, "ZLIB_CFLAGS += -I$(ZLIB_PATH)/include")
	assert.Contains(t, common, "CAIRO_LIBS +=  $(LIBPNG_PATH)/lib/libpng16_static.lib")
	assert.Contains(t, common, "LIBPNG_CFLAGS += -I$(LIBPNG_PATH)/include")
	assert.Contains(t, common, "@coreutils mkdir")
	assert.Contains(t, common, `"$(shell coreutils dirname $<)"`)
	assert.Contains(t, common, "CAIRO_LIBS =  gdi32.lib msimg32.lib user32.lib freetype.lib")
	assert.Contains(t, common,
		"DEFAULT_CFLAGS += -I. -I$(top_srcdir) -I$(top_srcdir)/src\n"+
			"DEFAULT_CFLAGS += -I\""+filepath.Join(sdk, "include")+"\"\n"+
			"DEFAULT_CFLAGS += -I\""+filepath.Join(root, "freetype", "include")+"\"\n")
	assert.Contains(t, common,
		"DEFAULT_LDFLAGS = -nologo $(CFG_LDFLAGS)\n"+
			"DEFAULT_LDFLAGS += -LIBPATH:\""+filepath.Join(sdk, "lib")+"\"\n"+
			"DEFAULT_LDFLAGS += -LIBPATH:\""+filepath.Join(root, "freetype", "lib")+"\"\n")

	assert.Equal(t, "\t@coreutils echo \"#define CAIRO_FEATURES_H\"\n",
		readFile(t, filepath.Join(sources, "build", "Makefile.win32.features-h")))
	assert.Equal(t, "CAIRO_HAS_FT_FONT=1\n",
		readFile(t, filepath.Join(sources, "build", "Makefile.win32.features")))
	assert.Equal(t, "headers:\n\t\n", readFile(t, filepath.Join(sources, "src", "Makefile.win32")))
}

func TestCompileWindowsPatchesOnce(t *testing.T) {
	lib, bc, _, _, _ := windowsFixture(t)
	common := filepath.Join(bc.SourceDirectory(Name), "build", "Makefile.win32.common")

	require.NoError(t, lib.ForceCompile(context.Background(), bc))
	once := readFile(t, common)
	require.NoError(t, lib.ForceCompile(context.Background(), bc))

	assert.Equal(t, once, readFile(t, common))
	assert.Equal(t, commonMakefile, readFile(t, patch.BackupPath(common)))

	restored, err := lib.ResetPatches(bc)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"build/Makefile.win32.common",
		"build/Makefile.win32.features",
		"build/Makefile.win32.features-h",
		"src/Makefile.win32",
	}, restored)
	assert.Equal(t, commonMakefile, readFile(t, common))
}

func TestCompileWindowsFailureNamesCairo(t *testing.T) {
	lib, bc, _, _, _ := windowsFixture(t)
	rec := shelltest.NewRecorder("make")
	lib.SetToolchain(library.Toolchain{Env: shell.FromList([]string{"PATH=C:\\tools"}), Runner: rec})

	err := lib.ForceCompile(context.Background(), bc)
	require.ErrorIs(t, err, build.ErrSubprocess)
	assert.Contains(t, err.Error(), "could not compile cairo")
}
