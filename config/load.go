package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/gendefaults/errors"
	"github.com/teranos/gendefaults/logger"
)

// Load reads the configuration. Precedence, lowest to highest: defaults,
// the user config, the nearest gendefaults.toml above the working directory
// (or path when given), GENDEFAULTS_* environment variables.
func Load(path string) (*Config, error) {
	v, sources, err := NewViper(path)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path, ignoring
// other files and the environment.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if err := mergeFile(v, path); err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	cfg.Sources = []string{path}
	return cfg, nil
}

// NewViper builds the merged Viper instance and returns the files it read.
// An explicit path must exist; discovered files are optional.
func NewViper(path string) (*viper.Viper, []string, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	var candidates []string
	if user := UserConfigPath(); user != "" {
		candidates = append(candidates, user)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, nil, errors.WithHint(
				errors.Wrapf(err, "config file %s", path),
				"run `gendefaults config init` to create one")
		}
		candidates = append(candidates, path)
	} else if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			candidates = append(candidates, project)
		}
	}

	var sources []string
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := mergeFile(v, candidate); err != nil {
			return nil, nil, err
		}
		sources = append(sources, candidate)
	}

	logger.ComponentLogger("config").Debugw("configuration loaded", "sources", sources)
	return v, sources, nil
}

// mergeFile merges one TOML file into v. MergeConfigMap keeps environment
// variables above file values.
func mergeFile(v *viper.Viper, path string) error {
	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("toml")
	if err := fv.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := v.MergeConfigMap(fv.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	return nil
}

// UserConfigPath returns the per-user config file path, which may not exist.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gendefaults", "config.toml")
}

// FindProjectConfig searches for gendefaults.toml by walking up from dir.
// Returns the path to the first file found, or empty string if none found.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
