// internal/cli/recipe.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/libcairo/pkg/recipe"
)

var recipeOutput string

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Print the build recipe as TOML",
	Long: `Print the declarative part of the descriptor (locations, options and
dependencies). The output can be edited and passed back with --recipe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, lib, err := setup()
		if err != nil {
			return err
		}

		data, err := recipe.Encode(lib)
		if err != nil {
			return err
		}

		if recipeOutput == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(recipeOutput, data, 0644); err != nil {
			return fmt.Errorf("writing recipe: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", recipeOutput)
		return nil
	},
}

func init() {
	recipeCmd.Flags().StringVarP(&recipeOutput, "output", "o", "", "write the recipe to a file")
}
