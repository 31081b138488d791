// internal/cli/reset.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the cairo sources patched by previous builds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bc, lib, err := setup()
		if err != nil {
			return err
		}

		restored, err := lib.ResetPatches(bc)
		if err != nil {
			return err
		}

		if len(restored) == 0 {
			fmt.Println("No patched files.")
			return nil
		}
		for _, file := range restored {
			fmt.Printf("✓ Restored %s\n", file)
		}
		return nil
	},
}
