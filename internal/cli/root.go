// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arc-language/libcairo"
	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/cairo"
	"github.com/arc-language/libcairo/pkg/core"
)

var (
	cfgFile        string
	buildRoot      string
	sourcesRoot    string
	platform       string
	profile        string
	recipeFile     string
	releaseVersion string
	debug          bool
	config         *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "libcairo",
	Short: "Build cairo and its dependencies from source",
	Long: `libcairo - cairo native library builder

Downloads, patches and compiles cairo together with pixman, freetype,
libpng and zlib, and reports where the compiled libraries are.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		return initConfig()
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/libcairo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&buildRoot, "build-root", "", "directory libraries are installed under")
	rootCmd.PersistentFlags().StringVar(&sourcesRoot, "sources-root", "", "directory sources are resolved to (default <build-root>/sources)")
	rootCmd.PersistentFlags().StringVar(&platform, "platform", "", "target platform (unix, windows)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "build profile (debug, release)")
	rootCmd.PersistentFlags().StringVar(&recipeFile, "recipe", "", "TOML recipe to build instead of the built-in one")
	rootCmd.PersistentFlags().StringVar(&releaseVersion, "release", "", "tag of the prebuilt release binaries")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(requirementsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads the configuration file and applies the flag overrides.
// An unreadable or invalid file fails the command.
func initConfig() error {
	loaded, err := core.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config = loaded

	// Override config with flags
	if buildRoot != "" {
		config.BuildRoot = buildRoot
	}
	if sourcesRoot != "" {
		config.SourcesRoot = sourcesRoot
	}
	if platform != "" {
		config.Platform = platform
	}
	if profile != "" {
		config.Profile = profile
	}
	if recipeFile != "" {
		config.Recipe = recipeFile
	}
	if releaseVersion != "" {
		config.ReleaseVersion = releaseVersion
	}
	if debug {
		config.Debug = true
	}
	return nil
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if config.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// setup creates the compilation context and the descriptor to work on
func setup() (*build.Context, *cairo.Library, error) {
	bc, err := config.Context(newLogger())
	if err != nil {
		return nil, nil, err
	}

	if config.Recipe != "" {
		lib, err := libcairo.LoadRecipe(config.Recipe)
		if err != nil {
			return nil, nil, err
		}
		return bc, lib, nil
	}

	return bc, libcairo.New(config.ReleaseVersion), nil
}
