package config

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/gendefaults/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input cannot be empty")
	}
	if c.Output == "" {
		return errors.New("output cannot be empty")
	}

	// Year: 0 = current year
	if c.Year < 0 || (c.Year > 0 && c.Year < 1970) || c.Year > 9999 {
		return errors.Newf("year must be 0 or a four digit year, got %d", c.Year)
	}

	for _, p := range c.Platforms {
		if p == "" {
			return errors.New("platforms cannot contain an empty name")
		}
	}

	if c.RequiredVersion != "" {
		if _, err := semver.NewConstraint(c.RequiredVersion); err != nil {
			return errors.Wrapf(err, "required_version %q is not a valid constraint", c.RequiredVersion)
		}
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
