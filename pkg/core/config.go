// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/libcairo/pkg/build"
)

// Config holds libcairo builder configuration
type Config struct {
	BuildRoot       string   `yaml:"build_root"`
	SourcesRoot     string   `yaml:"sources_root,omitempty"`
	Platform        string   `yaml:"platform,omitempty"`
	Profile         string   `yaml:"profile"`
	Recipe          string   `yaml:"recipe,omitempty"`
	ReleaseVersion  string   `yaml:"release_version,omitempty"`
	MSVCIncludeDirs []string `yaml:"msvc_include_dirs,omitempty"`
	MSVCLibDirs     []string `yaml:"msvc_lib_dirs,omitempty"`
	Debug           bool     `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BuildRoot: getDefaultBuildRoot(),
		Profile:   string(build.ProfileRelease),
	}
}

// DefaultPath is where the configuration file lives unless overridden
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "libcairo", "config.yaml"), nil
}

// LoadConfig loads configuration from file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config: %w", build.ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate rejects unknown platforms and profiles
func (c *Config) Validate() error {
	switch build.Platform(c.Platform) {
	case "", build.PlatformUnix, build.PlatformWindows:
	default:
		return fmt.Errorf("%w: unknown platform %q", build.ErrConfiguration, c.Platform)
	}
	switch build.Profile(c.Profile) {
	case "", build.ProfileDebug, build.ProfileRelease:
	default:
		return fmt.Errorf("%w: unknown profile %q", build.ErrConfiguration, c.Profile)
	}
	if c.BuildRoot == "" {
		return fmt.Errorf("%w: build_root is required", build.ErrConfiguration)
	}
	return nil
}

// Context creates the compilation context described by the configuration
func (c *Config) Context(logger logrus.FieldLogger) (*build.Context, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	buildRoot, err := filepath.Abs(c.BuildRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving build root: %w", err)
	}

	opts := []build.Option{build.WithLogger(logger)}
	if c.Platform != "" {
		opts = append(opts, build.WithPlatform(build.Platform(c.Platform)))
	}
	if c.Profile != "" {
		opts = append(opts, build.WithProfile(build.Profile(c.Profile)))
	}
	if c.SourcesRoot != "" {
		sourcesRoot, err := filepath.Abs(c.SourcesRoot)
		if err != nil {
			return nil, fmt.Errorf("resolving sources root: %w", err)
		}
		opts = append(opts, build.WithSourcesRoot(sourcesRoot))
	}
	if len(c.MSVCIncludeDirs) > 0 || len(c.MSVCLibDirs) > 0 {
		opts = append(opts, build.WithMSVCDirectories(c.MSVCIncludeDirs, c.MSVCLibDirs))
	}

	return build.NewContext(buildRoot, opts...), nil
}

func getDefaultBuildRoot() string {
	if path := os.Getenv("LIBCAIRO_BUILD_ROOT"); path != "" {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return filepath.Join(os.TempDir(), "libcairo")
	}

	return filepath.Join(wd, "target")
}
