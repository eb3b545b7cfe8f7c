package fs

import (
	"time"

	"github.com/bft-labs/bookinn/pkg/log"
)

// Option configures a store file.
type Option func(*options)

type options struct {
	strict bool
	logger log.Logger
	now    func() time.Time
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		now:    time.Now,
	}
}

// WithStrictCategories makes an unrecognized category a malformed record
// instead of reading it as a Suite.
func WithStrictCategories(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger used to report category fallbacks.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the clock used to name quarantined files.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
