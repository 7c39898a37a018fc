// Package config loads and holds the esgtrack configuration: logging
// settings and the optional incentive catalog overlay. Configuration is
// read from a YAML file and held behind a process-wide accessor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// configDirName is the per-user configuration directory under $HOME.
const configDirName = ".esgtrack"

// configFileName is the YAML configuration file inside the config dir.
const configFileName = "config.yaml"

// LoggingConfig controls logger construction.
type LoggingConfig struct {
	// Level is a zerolog level name. Defaults to info.
	Level string `yaml:"level"`

	// Format is console or json. Empty selects console on a terminal and
	// json otherwise.
	Format string `yaml:"format"`

	// File, when set, appends logs to the given path instead of stderr.
	File string `yaml:"file"`
}

// IncentivesConfig points at optional catalog extensions.
type IncentivesConfig struct {
	// OverlayFile is a YAML file of extra incentives merged into the
	// builtin catalog at engine construction.
	OverlayFile string `yaml:"overlay_file"`
}

// Config is the root configuration document.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Incentives IncentivesConfig `yaml:"incentives"`
}

// New returns a Config carrying the defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the per-user config file path, or empty when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, configFileName)
}

// Load reads the config file at path over the defaults. A missing file is
// not an error: the defaults apply unchanged.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

//nolint:gochecknoglobals // Process-wide config is set once at CLI startup.
var (
	globalConfig   = New()
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}
