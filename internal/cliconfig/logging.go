package cliconfig

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns a console logger on out at the configured level. Each
// line carries the session id so runs sharing one log can be told apart.
func Logger(cfg Config, out io.Writer, session string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(cfg.Level()).
		With().
		Timestamp()
	if session != "" {
		logger = logger.Str("session", session)
	}
	return logger.Logger()
}
