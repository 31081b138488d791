// internal/cli/requirements.go
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Check the tools and directories the build needs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bc, lib, err := setup()
		if err != nil {
			return err
		}

		if err := lib.EnsureRequirements(bc); err != nil {
			return err
		}

		color.New(color.FgGreen).Printf("✓ All requirements of %s found for %s\n", lib.Name(), bc.Platform())
		return nil
	},
}
