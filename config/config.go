// Package config loads gendefaults settings from gendefaults.toml files and
// GENDEFAULTS_* environment variables.
package config

// Config represents the gendefaults configuration
type Config struct {
	// Input is the definitions file.
	Input string `mapstructure:"input" toml:"input" yaml:"input" json:"input"`
	// Output receives one subdirectory per platform.
	Output string `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	// Platforms to generate. Empty means every registered generator.
	Platforms []string `mapstructure:"platforms" toml:"platforms" yaml:"platforms" json:"platforms"`
	// Year stamped into license headers, 0 = current year
	Year     int  `mapstructure:"year" toml:"year" yaml:"year" json:"year"`
	Parallel bool `mapstructure:"parallel" toml:"parallel" yaml:"parallel" json:"parallel"`
	// RequiredVersion is a semver constraint the running binary must satisfy.
	RequiredVersion string `mapstructure:"required_version" toml:"required_version" yaml:"required_version" json:"required_version"`

	Watch WatchConfig `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
	Log   LogConfig   `mapstructure:"log" toml:"log" yaml:"log" json:"log"`

	// Sources lists the config files merged into this configuration,
	// lowest precedence first.
	Sources []string `mapstructure:"-" toml:"-" yaml:"-" json:"-"`
}

// WatchConfig configures generate --watch
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"` // quiet period before regenerating
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"` // same scale as -v
}

// File names
const (
	ProjectConfigFile = "gendefaults.toml"
	EnvPrefix         = "GENDEFAULTS"
)

// DefaultFilePermissions for files written by config init
const DefaultFilePermissions = 0644
