package cliconfig

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/bookinn/internal/adapters/fs"
)

// DefaultWatchDebounce is the quiet period before a changed store is checked.
const DefaultWatchDebounce = 200 * time.Millisecond

// Config holds CLI configuration for bookinn.
type Config struct {
	DataDir      string
	RoomsFile    string
	BookingsFile string

	LogLevel         string
	StrictCategories bool

	WatchStores   bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DataDir:       ".",
		RoomsFile:     fs.DefaultRoomsFile,
		BookingsFile:  fs.DefaultBookingsFile,
		LogLevel:      zerolog.LevelWarnValue,
		WatchDebounce: DefaultWatchDebounce,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.RoomsFile == "" {
		c.RoomsFile = fs.DefaultRoomsFile
	}
	if c.BookingsFile == "" {
		c.BookingsFile = fs.DefaultBookingsFile
	}
	if c.RoomsPath() == c.BookingsPath() {
		return fmt.Errorf("rooms-file and bookings-file must differ")
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = zerolog.LevelWarnValue
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}

	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}
	return nil
}

// RoomsPath returns the rooms store path. Absolute file names are used
// as given, relative ones are resolved against DataDir.
func (c Config) RoomsPath() string {
	return c.resolve(c.RoomsFile)
}

// BookingsPath returns the bookings store path, resolved like RoomsPath.
func (c Config) BookingsPath() string {
	return c.resolve(c.BookingsFile)
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.DataDir, name)
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
