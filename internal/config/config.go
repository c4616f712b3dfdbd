package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	defaultGenerationMSXURL = "http://www.generation-msx.nl/msxdb/softwareinfo/"
	defaultMachine          = "C-BIOS_MSX2+"
)

// Config describes the application level configuration loaded from json.
type Config struct {
	// DatabasePath is the sqlite file holding every game collection.
	DatabasePath string `json:"database_path"`
	// ExtraDataDir is the directory holding the extra-data overlay file.
	ExtraDataDir string `json:"extra_data_dir"`
	// MachinesDir is the openMSX machines directory; the software databases
	// live next to it in the openMSX share tree.
	MachinesDir string `json:"machines_dir"`
	// GenerationMSXURL is the info-link prefix for catalogued games.
	GenerationMSXURL string `json:"generation_msx_url"`
	// DefaultMachine is used for scanned and imported games when no machine
	// is given on the command line.
	DefaultMachine string `json:"default_machine"`
}

// LoadFirst tries to load configuration from the given paths, returning the
// first successfully decoded configuration. If none of the paths contain a
// readable config, an error is returned.
func LoadFirst(paths ...string) (*Config, error) {
	var lastErr error
	for _, path := range paths {
		if path == "" {
			continue
		}
		cfg, err := Load(path)
		if errors.Is(err, os.ErrNotExist) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("config not found in paths: %v", paths)
	}
	return nil, lastErr
}

// Load reads configuration from a single json file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.GenerationMSXURL == "" {
		c.GenerationMSXURL = defaultGenerationMSXURL
	}
	if c.DefaultMachine == "" {
		c.DefaultMachine = defaultMachine
	}
	if c.ExtraDataDir == "" {
		c.ExtraDataDir = "."
	}
}

// Validate performs basic validation of the configuration.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return errors.New("config.database_path must be set")
	}
	return nil
}
