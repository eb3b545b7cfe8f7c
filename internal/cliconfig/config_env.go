package cliconfig

import "os"

// ApplyEnvConfig applies BOOKINN_* environment variables to cfg.
// Flags that have been explicitly set (changed map) win.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-dir", os.Getenv("BOOKINN_DATA_DIR"), &cfg.DataDir)
	s.setString("rooms-file", os.Getenv("BOOKINN_ROOMS_FILE"), &cfg.RoomsFile)
	s.setString("bookings-file", os.Getenv("BOOKINN_BOOKINGS_FILE"), &cfg.BookingsFile)
	s.setString("log-level", os.Getenv("BOOKINN_LOG_LEVEL"), &cfg.LogLevel)

	s.setBoolFromString("strict-categories", os.Getenv("BOOKINN_STRICT_CATEGORIES"), &cfg.StrictCategories)
	s.setBoolFromString("watch", os.Getenv("BOOKINN_WATCH_STORES"), &cfg.WatchStores)

	return s.setDuration("watch-debounce", os.Getenv("BOOKINN_WATCH_DEBOUNCE"), &cfg.WatchDebounce)
}
