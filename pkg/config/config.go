// Package config loads the process configuration from an optional YAML file
// with WAYFARE_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"

	"github.com/wayfare/wayfare/pkg/util"
)

const (
	DefaultSnapshotPath = "wayfare.sav"
	DefaultPassphrase   = "wayfare-catalogue-snapshot"
	DefaultMaxStopover  = "PT6H"
	DefaultListen       = ":8080"
)

type Config struct {
	SnapshotPath string `yaml:"snapshot_path"`
	Passphrase   string `yaml:"passphrase"`

	// MaxStopover is an ISO 8601 duration, e.g. PT6H
	MaxStopover string `yaml:"max_stopover"`

	Listen string `yaml:"listen"`
}

func Defaults() *Config {
	return &Config{
		SnapshotPath: DefaultSnapshotPath,
		Passphrase:   DefaultPassphrase,
		MaxStopover:  DefaultMaxStopover,
		Listen:       DefaultListen,
	}
}

// Load reads the config file at path. A missing file just yields the
// defaults. Environment variables override file values either way.
func Load(path string) (*Config, error) {
	config := Defaults()

	file, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	env := util.GetEnvironmentVariables()
	if value, ok := env["WAYFARE_SNAPSHOT_PATH"]; ok {
		config.SnapshotPath = value
	}
	if value, ok := env["WAYFARE_PASSPHRASE"]; ok {
		config.Passphrase = value
	}
	if value, ok := env["WAYFARE_MAX_STOPOVER"]; ok {
		config.MaxStopover = value
	}
	if value, ok := env["WAYFARE_LISTEN"]; ok {
		config.Listen = value
	}

	return config, nil
}

// StopoverDuration resolves the configured ISO 8601 stopover window against
// a fixed reference instant.
func (c *Config) StopoverDuration() (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(c.MaxStopover)
	if err != nil {
		return 0, fmt.Errorf("failed to parse max_stopover %q: %w", c.MaxStopover, err)
	}

	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	return parsed.Shift(reference).Sub(reference), nil
}
