// Package bookinn manages hotel rooms and guest bookings kept in two flat
// files.
//
// Example usage:
//
//	cfg := bookinn.DefaultConfig()
//	cfg.DataDir = "/var/lib/bookinn"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	inn, err := bookinn.Open(ctx, cfg, nil)
//	if err != nil && inn == nil {
//	    log.Fatal(err)
//	}
//	defer inn.Close(ctx)
//	b, err := inn.BookRoom(ctx, 101, bookinn.Customer{Name: "Ann"})
package bookinn

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/bookinn/internal/adapters/fs"
	"github.com/bft-labs/bookinn/internal/cliconfig"
	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/internal/hotel"
	"github.com/bft-labs/bookinn/internal/watch"
	"github.com/bft-labs/bookinn/pkg/log"
)

// Config holds the data locations and runtime switches.
// Use DefaultConfig() to get a Config with defaults.
type Config = cliconfig.Config

// Room, Booking, Customer and Category are the domain values.
type (
	Room     = domain.Room
	Booking  = domain.Booking
	Customer = domain.Customer
	Category = domain.Category
)

// Room categories.
const (
	CategoryDeluxe = domain.CategoryDeluxe
	CategorySuite  = domain.CategorySuite
)

// Errors returned by Inn operations. Test with errors.Is.
var (
	ErrDuplicateRoom   = domain.ErrDuplicateRoom
	ErrRoomUnavailable = domain.ErrRoomUnavailable
	ErrBookingNotFound = domain.ErrBookingNotFound
	ErrStorage         = domain.ErrStorage
	ErrMalformedRecord = domain.ErrMalformedRecord
	ErrInvalidField    = domain.ErrInvalidField
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Inn is a Hotel opened on the configured store files, with the optional
// store watcher attached.
type Inn struct {
	*hotel.Hotel
	watcher *watch.Watcher
}

// Open loads the stores named by cfg. cfg must be validated.
//
// A failed load still returns a usable, empty Inn together with the load
// error; the store files have been moved aside by then. Any other error
// returns a nil Inn.
func Open(ctx context.Context, cfg Config, logger log.Logger) (*Inn, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	rooms, bookings := stores(cfg, logger)
	h := hotel.New(rooms, bookings, hotel.WithLogger(logger))
	inn := &Inn{Hotel: h}

	loadErr := h.Load(ctx)

	if cfg.WatchStores {
		w := watch.New(watch.Config{Debounce: cfg.WatchDebounce}, logger, rooms, bookings)
		if err := w.Start(ctx); err != nil {
			return nil, errors.Join(loadErr, fmt.Errorf("watch stores: %w", err))
		}
		inn.watcher = w
	}
	return inn, loadErr
}

// Snapshot loads the stores read-only: a failed load returns the error and
// leaves the files where they are.
func Snapshot(ctx context.Context, cfg Config, logger log.Logger) (*hotel.Hotel, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	rooms, bookings := stores(cfg, logger)
	h := hotel.New(rooms, bookings, hotel.WithLogger(logger), hotel.WithQuarantine(false))
	if err := h.Load(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Close stops the watcher and saves both stores.
func (i *Inn) Close(ctx context.Context) error {
	var err error
	if i.watcher != nil {
		err = i.watcher.Stop()
	}
	return errors.Join(err, i.Hotel.Close(ctx))
}

func stores(cfg Config, logger log.Logger) (*fs.RoomFile, *fs.BookingFile) {
	opts := []fs.Option{
		fs.WithStrictCategories(cfg.StrictCategories),
		fs.WithLogger(logger),
	}
	return fs.NewRoomFile(cfg.RoomsPath(), opts...), fs.NewBookingFile(cfg.BookingsPath(), opts...)
}
