// internal/cli/build.go
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/library"
)

var buildOnlyCairo bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile cairo and its dependencies",
	Long: `Resolve sources, check requirements and compile every dependency, then cairo.

Examples:
  libcairo build
  libcairo build --build-root /tmp/build
  libcairo build --only-cairo --platform windows`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildOnlyCairo, "only-cairo", false, "skip the dependencies, assuming they are installed")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bc, lib, err := setup()
	if err != nil {
		return err
	}

	fmt.Printf("Building %s into %s\n", lib.Name(), bc.BuildRoot())

	if buildOnlyCairo {
		err = compileOne(ctx, lib, bc)
	} else {
		err = library.Compile(ctx, lib, bc)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ Failed to build %s\n", lib.Name())
		return err
	}

	color.New(color.FgGreen).Printf("✓ Successfully built %s\n", lib.Name())
	artifacts := library.FindArtifacts(lib, bc)
	if len(artifacts) == 0 {
		for _, dir := range lib.CompiledLibraryDirectories(bc) {
			fmt.Printf("  %s\n", dir)
		}
	}
	for _, artifact := range artifacts {
		fmt.Printf("  %s\n", artifact.Path)
	}
	return nil
}

func compileOne(ctx context.Context, lib library.Library, bc *build.Context) error {
	if err := lib.EnsureSources(ctx, bc); err != nil {
		return err
	}
	if err := lib.EnsureRequirements(bc); err != nil {
		return err
	}
	return lib.ForceCompile(ctx, bc)
}
