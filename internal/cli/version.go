// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/libcairo/pkg/cairo"
)

// Version of the builder
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("libcairo builder version %s\n", Version)
		fmt.Printf("Builds cairo %s\n", cairo.Version)
		fmt.Println("https://github.com/arc-language/libcairo")
	},
}
