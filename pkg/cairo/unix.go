// pkg/cairo/unix.go
package cairo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/dependency"
	"github.com/arc-language/libcairo/pkg/patch"
	"github.com/arc-language/libcairo/pkg/shell"
)

// extraLinkerFlags are appended to LDFLAGS after the dependency search paths;
// the freetype archive references bzip2 symbols
const extraLinkerFlags = "-lbz2_static"

// siblingPkgConfigDirectory lets configure find an uninstalled pixman next to
// the build directory
const siblingPkgConfigDirectory = "../pixman"

func (c *Library) compileUnix(ctx context.Context, bc *build.Context) error {
	if err := c.patchUnixMakefile(bc); err != nil {
		return err
	}

	prefix := c.NativeLibraryPrefix(bc)
	if err := os.MkdirAll(prefix, 0755); err != nil {
		return fmt.Errorf("could not create %s: %w", prefix, err)
	}

	env, err := c.unixEnvironment(bc)
	if err != nil {
		return err
	}

	logger := bc.Logger().WithField("library", Name)
	logger.Infof("cpp_flags = %s", env.Lookup("CPPFLAGS"))
	logger.Infof("linker_flags = %s", env.Lookup("LDFLAGS"))

	configure := shell.Command{
		Path: filepath.Join(c.SourceDirectory(bc), "configure"),
		Args: []string{
			"--enable-ft=yes",
			"--prefix=" + prefix,
			"--exec-prefix=" + prefix,
			"--libdir=" + filepath.Join(prefix, "lib"),
		},
		Dir: prefix,
		Env: env,
	}
	if err := c.tools.Run(ctx, bc, "configure", Name, configure); err != nil {
		return err
	}

	install := shell.Command{
		Path: "make",
		Args: []string{"install"},
		Dir:  prefix,
		Env:  env,
	}
	return c.tools.Run(ctx, bc, "compile", Name, install)
}

// unixEnvironment extends the inherited environment with the dependency
// search paths. Inherited values are kept in front of the computed ones.
func (c *Library) unixEnvironment(bc *build.Context) (shell.Environment, error) {
	base := c.tools.Environment()

	pkgConfigPaths := c.dependencies.AllPkgConfigDirectories(bc)
	pkgConfigPaths = append(pkgConfigPaths, siblingPkgConfigDirectory)
	pkgConfigPaths = append(pkgConfigPaths, base.SplitList("PKG_CONFIG_PATH")...)

	freetypeConfig, ok := c.dependency(dependency.FreetypeName).PkgConfigDirectory(bc)
	if !ok {
		return shell.Environment{}, &build.Error{
			Op:      "configure",
			Library: Name,
			Err:     fmt.Errorf("%w: could not find freetype's pkgconfig", build.ErrConfiguration),
		}
	}

	linkerFlags := strings.TrimSpace(c.dependencies.LinkerLibrariesFlags(bc) + " " + extraLinkerFlags)

	env := base.With("PKG_CONFIG_PATH", shell.JoinList(pkgConfigPaths))
	env = env.With("FREETYPE_CONFIG", freetypeConfig)
	env = env.WithAppended("CPPFLAGS", c.dependencies.IncludeHeadersFlags(bc))
	env = env.WithAppended("LDFLAGS", linkerFlags)
	return env, nil
}

func (c *Library) patchUnixMakefile(bc *build.Context) error {
	p, err := patch.Open(c.SourceDirectory(bc), bc.Logger())
	if err != nil {
		return err
	}

	return p.Apply(filepath.Join(c.SourceDirectory(bc), "Makefile.in"), func(contents string) string {
		return strings.ReplaceAll(contents,
			"DIST_SUBDIRS = src doc util boilerplate test perf",
			"DIST_SUBDIRS = src boilerplate",
		)
	})
}
