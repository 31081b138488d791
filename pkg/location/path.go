// pkg/location/path.go
package location

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arc-language/libcairo/pkg/build"
)

// Path is a source tree already present on the filesystem
type Path struct {
	Dir string
}

// NewPath creates a location for an existing directory
func NewPath(dir string) *Path {
	return &Path{Dir: dir}
}

func (p *Path) Kind() Kind { return KindPath }

func (p *Path) String() string { return p.Dir }

// EnsureSources copies the tree into dir, unless dir is the tree itself
func (p *Path) EnsureSources(ctx context.Context, dir string, bc *build.Context) error {
	src, err := filepath.Abs(p.Dir)
	if err != nil {
		return unavailable(p, err)
	}
	dst, err := filepath.Abs(dir)
	if err != nil {
		return unavailable(p, err)
	}
	if src == dst {
		return nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return unavailable(p, err)
	}
	if !info.IsDir() {
		return unavailable(p, fmt.Errorf("%s is not a directory", src))
	}

	ok, err := populated(dst)
	if err != nil {
		return unavailable(p, err)
	}
	if ok {
		bc.Logger().Debugf("Sources already present in %s", dst)
		return nil
	}

	if err := copyDir(ctx, src, dst); err != nil {
		return unavailable(p, err)
	}
	bc.Logger().Infof("✓ Copied %s to %s", src, dst)
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(ctx context.Context, src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(srcPath)
			if err != nil {
				return err
			}
			if err := os.Symlink(target, dstPath); err != nil {
				return err
			}
		default:
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}
