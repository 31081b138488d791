// pkg/library/compile.go
package library

import (
	"context"
	"fmt"

	"github.com/arc-language/libcairo/pkg/build"
)

// Prebuilt is implemented by descriptors that can consume an already
// installed prefix instead of their sources
type Prebuilt interface {
	IsPrebuilt(bc *build.Context) bool
}

// Compile builds lib after all of its dependencies, depth first and in
// declaration order: resolve sources (unless prebuilt), run the preflight,
// then ForceCompile.
// A library reachable through several paths is compiled once.
func Compile(ctx context.Context, lib Library, bc *build.Context) error {
	return compile(ctx, lib, bc, make(map[string]bool), nil)
}

func compile(ctx context.Context, lib Library, bc *build.Context, done map[string]bool, stack []string) error {
	name := lib.Name()
	if done[name] {
		return nil
	}
	for _, visiting := range stack {
		if visiting == name {
			return &build.Error{
				Op:      "compile",
				Library: name,
				Err:     fmt.Errorf("%w: dependency cycle %v", build.ErrConfiguration, append(stack, name)),
			}
		}
	}
	stack = append(stack, name)

	for _, dep := range lib.Dependencies() {
		if err := compile(ctx, dep, bc, done, stack); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	logger := bc.Logger().WithField("library", name)

	if p, ok := lib.(Prebuilt); ok && p.IsPrebuilt(bc) {
		logger.Infof("Skipping sources, prebuilt in %s", lib.NativeLibraryPrefix(bc))
	} else {
		logger.Infof("Ensuring sources from %s", lib.Location())
		if err := lib.EnsureSources(ctx, bc); err != nil {
			return err
		}
	}

	if err := lib.EnsureRequirements(bc); err != nil {
		return err
	}

	logger.Infof("Compiling into %s", lib.NativeLibraryPrefix(bc))
	if err := lib.ForceCompile(ctx, bc); err != nil {
		return err
	}

	done[name] = true
	logger.Infof("✓ Compiled %s", name)
	return nil
}
