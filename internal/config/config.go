// Package config loads jsig.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no explicit
// path is given.
const DefaultFile = "jsig.yaml"

var Formats = []string{"line", "json", "java"}

type Config struct {
	// ClassPath lists directories and jar files searched for classes.
	ClassPath   []string `yaml:"classpath"`
	Format      string   `yaml:"format"`
	Verbosity   int      `yaml:"verbosity"`
	LogFile     string   `yaml:"log_file"`
	Workers     int      `yaml:"workers"`
	MetricsFile string   `yaml:"metrics_file"`
	Trace       bool     `yaml:"trace"`
}

func Default() Config {
	return Config{
		Format:  "line",
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Load reads path, or DefaultFile when path is empty. A missing
// DefaultFile is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q (expected one of %v)", c.Format, Formats)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
