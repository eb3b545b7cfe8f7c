package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make the
// file formats friendly. Pointer fields distinguish unset from false.
type FileConfig struct {
	DataDir          string `toml:"data_dir" yaml:"data_dir"`
	RoomsFile        string `toml:"rooms_file" yaml:"rooms_file"`
	BookingsFile     string `toml:"bookings_file" yaml:"bookings_file"`
	LogLevel         string `toml:"log_level" yaml:"log_level"`
	StrictCategories *bool  `toml:"strict_categories" yaml:"strict_categories"`
	WatchStores      *bool  `toml:"watch_stores" yaml:"watch_stores"`
	WatchDebounce    string `toml:"watch_debounce" yaml:"watch_debounce"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are YAML, anything else is TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.bookinn/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".bookinn", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-dir", fc.DataDir, &cfg.DataDir)
	s.setString("rooms-file", fc.RoomsFile, &cfg.RoomsFile)
	s.setString("bookings-file", fc.BookingsFile, &cfg.BookingsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("strict-categories", fc.StrictCategories, &cfg.StrictCategories)
	s.setBool("watch", fc.WatchStores, &cfg.WatchStores)

	return s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
