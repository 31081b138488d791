package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libcairo/pkg/build"
)

// withFlags restores the global flag values after the test
func withFlags(t *testing.T, file string) {
	t.Helper()
	savedFile, savedPlatform, savedConfig := cfgFile, platform, config
	t.Cleanup(func() {
		cfgFile, platform, config = savedFile, savedPlatform, savedConfig
	})
	cfgFile = file
	platform = ""
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestInvalidConfigFailsTheCommand(t *testing.T) {
	withFlags(t, writeConfig(t, "build_root: /tmp/build\nplatform: plan9\n"))

	err := rootCmd.PersistentPreRunE(buildCmd, nil)
	require.ErrorIs(t, err, build.ErrConfiguration)
	assert.Contains(t, err.Error(), "plan9")
}

func TestVersionIgnoresConfig(t *testing.T) {
	withFlags(t, writeConfig(t, "platform: plan9\n"))

	assert.NoError(t, rootCmd.PersistentPreRunE(versionCmd, nil))
}

func TestFlagsOverrideConfig(t *testing.T) {
	withFlags(t, writeConfig(t, "build_root: /tmp/build\nplatform: unix\n"))
	platform = "windows"

	require.NoError(t, rootCmd.PersistentPreRunE(infoCmd, nil))
	assert.Equal(t, "/tmp/build", config.BuildRoot)
	assert.Equal(t, "windows", config.Platform)
}
