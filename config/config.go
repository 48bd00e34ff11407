// Package config loads signup.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jskinn96/signup/validate"
	"github.com/jskinn96/signup/wizard"
)

// DefaultPath is where the CLI looks for the config file.
const DefaultPath = "signup.yaml"

// DefaultDatabase is the SQLite file used when none is configured.
const DefaultDatabase = "signup.db"

// Config is the parsed contents of signup.yaml.
type Config struct {
	SettleDelay time.Duration `yaml:"-"`
	Database    string        `yaml:"database,omitempty"`
	Theme       string        `yaml:"theme,omitempty"`
	Log         LogConfig     `yaml:"log,omitempty"`

	RawSettleDelay string `yaml:"settle_delay,omitempty"`
}

// LogConfig controls the JSON logger.
type LogConfig struct {
	Verbose bool   `yaml:"verbose,omitempty"`
	File    string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SettleDelay: wizard.DefaultSettleDelay,
		Database:    DefaultDatabase,
		Theme:       "auto",
	}
}

// Parse validates data against the config schema and decodes it over the
// defaults.
func Parse(data []byte) (*Config, error) {
	errs, err := validate.Document(validate.ConfigDocument, data)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid signup config: %s", strings.Join(errs, "; "))
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing signup config: %w", err)
	}
	if cfg.RawSettleDelay != "" {
		d, err := time.ParseDuration(cfg.RawSettleDelay)
		if err != nil {
			return nil, fmt.Errorf("signup config: settle_delay: %w", err)
		}
		cfg.SettleDelay = d
	}
	return cfg, nil
}

// Load reads the config at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading signup config %s: %w", path, err)
	}
	return Parse(data)
}
