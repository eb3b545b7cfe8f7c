// Package log provides the logging abstraction used by bookinn components.
//
// Components accept a [Logger] and never import a logging library
// directly. The CLI wires a zerolog-backed adapter; tests and embedders
// that want silence use the no-op logger.
//
//	logger := log.NewZerologAdapter(zerolog.New(os.Stderr))
//	logger.Info("room added", log.Int("room", 101))
package log
