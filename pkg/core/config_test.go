package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libcairo/pkg/build"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("LIBCAIRO_BUILD_ROOT", "/tmp/libcairo-build")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/libcairo-build", cfg.BuildRoot)
	assert.Equal(t, string(build.ProfileRelease), cfg.Profile)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{
		BuildRoot:       "/work/target",
		Platform:        "windows",
		Profile:         "debug",
		MSVCIncludeDirs: []string{"C:/sdk/include"},
		MSVCLibDirs:     []string{"C:/sdk/lib"},
		Debug:           true,
	}
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigRejectsUnknownValues(t *testing.T) {
	dir := t.TempDir()

	for name, contents := range map[string]string{
		"platform": "build_root: /tmp/x\nplatform: beos\n",
		"profile":  "build_root: /tmp/x\nprofile: fast\n",
	} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, build.ErrConfiguration, name)
	}

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("build_root: [\n"), 0644))
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, build.ErrConfiguration)
}

func TestConfigContext(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		BuildRoot:   root,
		SourcesRoot: filepath.Join(root, "src"),
		Platform:    "unix",
		Profile:     "debug",
	}

	bc, err := cfg.Context(logrus.New())
	require.NoError(t, err)
	assert.True(t, bc.IsUnix())
	assert.Equal(t, root, bc.BuildRoot())
	assert.Equal(t, filepath.Join(root, "src"), bc.SourcesRoot())
	assert.Equal(t, build.ProfileDebug, bc.Profile())
}

func TestConfigContextMSVCDirectories(t *testing.T) {
	cfg := &Config{
		BuildRoot:       t.TempDir(),
		Platform:        "windows",
		MSVCIncludeDirs: []string{"C:/sdk/include"},
		MSVCLibDirs:     []string{"C:/sdk/lib"},
	}

	bc, err := cfg.Context(logrus.New())
	require.NoError(t, err)
	assert.True(t, bc.IsWindows())
	assert.Equal(t, []string{"C:/sdk/include"}, bc.MSVCIncludeDirectories())
	assert.Equal(t, []string{"C:/sdk/lib"}, bc.MSVCLibDirectories())
}

func TestConfigContextRequiresBuildRoot(t *testing.T) {
	_, err := (&Config{}).Context(logrus.New())
	assert.ErrorIs(t, err, build.ErrConfiguration)
}
