package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries the knobs the dashboard reads at startup. Every field
// has a default, so a missing config file is not an error.
type Config struct {
	DBPath       string  `toml:"db_path"`
	FocusMinutes int     `toml:"focus_minutes"`
	Latitude     float64 `toml:"latitude"`
	Longitude    float64 `toml:"longitude"`
	Timezone     string  `toml:"timezone"`
}

func DefaultConfig() *Config {
	return &Config{
		FocusMinutes: 30,
		// Istanbul, matching the original briefing widget.
		Latitude:  41.0082,
		Longitude: 28.9784,
		Timezone:  "Europe/Istanbul",
	}
}

func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "kokpit"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the file background side-effect failures are appended to.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kokpit.log"), nil
}

// Load reads the config file, returning defaults when it does not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.FocusMinutes <= 0 {
		cfg.FocusMinutes = DefaultConfig().FocusMinutes
	}
	return cfg, nil
}

func EnsureDirectories() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
