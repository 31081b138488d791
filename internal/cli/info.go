// internal/cli/info.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/libcairo/pkg/library"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where cairo and its dependencies are built",
	Long:  `Display the locations, prefixes and directories of cairo and its dependencies for the configured context.`,
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	bc, lib, err := setup()
	if err != nil {
		return err
	}

	fmt.Printf("Library:      %s\n", lib.Name())
	fmt.Printf("Platform:     %s\n", bc.Platform())
	fmt.Printf("Profile:      %s\n", bc.Profile())
	fmt.Printf("Source:       %s\n", lib.Location())
	if lib.HasReleaseLocation() {
		fmt.Printf("Release:      %s\n", lib.ReleaseLocation())
	}
	fmt.Printf("Sources dir:  %s\n", lib.SourceDirectory(bc))
	fmt.Printf("Prefix:       %s\n", lib.NativeLibraryPrefix(bc))
	fmt.Printf("Artifacts:    %s\n", strings.Join(lib.CompiledLibraryDirectories(bc), ", "))
	if dir, ok := lib.PkgConfigDirectory(bc); ok {
		fmt.Printf("pkg-config:   %s\n", dir)
	} else {
		fmt.Printf("pkg-config:   (not built)\n")
	}

	for _, artifact := range library.FindArtifacts(lib, bc) {
		kind := "shared"
		if artifact.IsStatic {
			kind = "static"
		}
		fmt.Printf("  %-7s %s\n", kind, artifact.Path)
	}

	deps := lib.Dependencies()
	fmt.Printf("\nDependencies:\n")
	for _, dep := range deps {
		fmt.Printf("  %s\n", dep.Name())
		fmt.Printf("    source: %s\n", dep.Location())
		fmt.Printf("    prefix: %s\n", dep.NativeLibraryPrefix(bc))
	}

	if flags := deps.IncludeHeadersFlags(bc); flags != "" {
		fmt.Printf("\nCPPFLAGS += %s\n", flags)
	}
	if flags := deps.LinkerLibrariesFlags(bc); flags != "" {
		fmt.Printf("LDFLAGS  += %s\n", flags)
	}

	return nil
}
