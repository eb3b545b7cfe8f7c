// Package hotel composes the room catalog, the booking ledger and their
// stores into the repository the menu layer talks to.
//
// Every mutating operation updates memory first and then rewrites both
// stores. A failed save is reported as an error wrapping domain.ErrStorage
// but does not undo the in-memory change.
package hotel

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/bft-labs/bookinn/internal/catalog"
	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/internal/ledger"
	"github.com/bft-labs/bookinn/internal/ports"
	"github.com/bft-labs/bookinn/pkg/log"
)

// Hotel is the booking repository. It is meant for a single interactive
// actor and is not safe for concurrent use.
type Hotel struct {
	rooms    ports.RoomStore
	bookings ports.BookingStore
	catalog  *catalog.Catalog
	ledger   *ledger.Ledger
	logger   log.Logger
	now      func() time.Time

	quarantine bool
}

type quarantiner interface {
	Quarantine(ctx context.Context) (string, error)
}

// Option configures a Hotel.
type Option func(*Hotel)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(h *Hotel) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithClock sets the clock used to date new bookings.
func WithClock(now func() time.Time) Option {
	return func(h *Hotel) {
		if now != nil {
			h.now = now
		}
	}
}

// WithQuarantine controls whether a failed Load moves the store files
// aside. It is on by default; read-only callers turn it off.
func WithQuarantine(enabled bool) Option {
	return func(h *Hotel) {
		h.quarantine = enabled
	}
}

// New creates an empty Hotel backed by the given stores. Call Load to
// read existing state.
func New(rooms ports.RoomStore, bookings ports.BookingStore, opts ...Option) *Hotel {
	h := &Hotel{
		rooms:    rooms,
		bookings: bookings,
		catalog:  catalog.New(),
		ledger:   ledger.New(),
		logger:   log.NewNoopLogger(),
		now:      time.Now,

		quarantine: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load reads the rooms store and then the bookings store. Rooms that only
// appear in bookings are added to the catalog as booked.
//
// If either store fails to load, the hotel is left empty and both store
// files are moved aside so that later saves cannot overwrite them.
func (h *Hotel) Load(ctx context.Context) error {
	err := h.load(ctx)
	if err == nil {
		h.logger.Info("stores loaded",
			log.Int("rooms", h.catalog.Len()),
			log.Int("bookings", h.ledger.Len()),
			log.Int("next_booking_id", h.ledger.NextID()),
		)
		return nil
	}

	h.catalog.Reset()
	h.ledger.Reset()
	h.logger.Error("load failed, starting with an empty hotel", log.Err(err))
	if !h.quarantine {
		return err
	}

	for _, store := range []quarantiner{h.rooms, h.bookings} {
		moved, qerr := store.Quarantine(ctx)
		if qerr != nil {
			h.logger.Error("could not move store aside", log.Err(qerr))
			err = errors.Join(err, qerr)
			continue
		}
		if moved != "" {
			h.logger.Warn("store moved aside for inspection", log.String("path", moved))
		}
	}
	return err
}

func (h *Hotel) load(ctx context.Context) error {
	rooms, err := h.rooms.LoadRooms(ctx)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	for _, room := range rooms {
		if err := h.catalog.Add(room); err != nil {
			return fmt.Errorf("load rooms: %w", err)
		}
	}

	bookings, err := h.bookings.LoadBookings(ctx)
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	referenced := make(map[int]bool, len(bookings))
	for _, b := range bookings {
		if _, dup := h.ledger.Get(b.ID); dup {
			return fmt.Errorf("load bookings: %w: duplicate booking id %d", domain.ErrMalformedRecord, b.ID)
		}
		if referenced[b.Room.Number] {
			return fmt.Errorf("load bookings: %w: room %d booked more than once", domain.ErrMalformedRecord, b.Room.Number)
		}
		h.ledger.Restore(b)
		referenced[b.Room.Number] = true

		existing, ok := h.catalog.Get(b.Room.Number)
		switch {
		case !ok:
			room := b.Room
			room.Booked = true
			if err := h.catalog.Add(room); err != nil {
				return fmt.Errorf("load bookings: %w", err)
			}
			h.logger.Warn("room missing from rooms store, restored from booking",
				log.Int("room", room.Number),
				log.Int("booking", b.ID),
			)
		case !existing.Booked:
			h.catalog.SetBooked(existing.Number, true)
			h.logger.Warn("room has an active booking but was not marked booked",
				log.Int("room", existing.Number),
				log.Int("booking", b.ID),
			)
		}
	}

	for room := range h.catalog.All() {
		if room.Booked && !referenced[room.Number] {
			h.logger.Warn("room is marked booked but has no active booking", log.Int("room", room.Number))
		}
	}
	return nil
}

// Save rewrites the bookings store and then the rooms store.
func (h *Hotel) Save(ctx context.Context) error {
	return errors.Join(h.saveBookings(ctx), h.saveRooms(ctx))
}

// Close performs the final save at shutdown.
func (h *Hotel) Close(ctx context.Context) error {
	if err := h.Save(ctx); err != nil {
		return err
	}
	h.logger.Info("stores saved",
		log.Int("rooms", h.catalog.Len()),
		log.Int("bookings", h.ledger.Len()),
	)
	return nil
}

// AddRoom adds an unbooked room and rewrites the rooms store.
// It returns ErrDuplicateRoom if the number is taken.
func (h *Hotel) AddRoom(ctx context.Context, number int, category domain.Category) (domain.Room, error) {
	if !category.Valid() {
		return domain.Room{}, fmt.Errorf("%w: %v", domain.ErrUnknownCategory, category)
	}
	room := domain.NewRoom(number, category)
	if err := h.catalog.Add(room); err != nil {
		return domain.Room{}, err
	}
	h.logger.Info("room added", log.Int("room", number), log.String("category", category.String()))
	return room, h.saveRooms(ctx)
}

// BookRoom books an unbooked room for customer and rewrites both stores.
// It returns ErrRoomUnavailable if the room does not exist or is booked.
func (h *Hotel) BookRoom(ctx context.Context, number int, customer domain.Customer) (domain.Booking, error) {
	if err := customer.Validate(); err != nil {
		return domain.Booking{}, err
	}
	room, ok := h.catalog.Get(number)
	if !ok || room.Booked {
		return domain.Booking{}, fmt.Errorf("%w: %d", domain.ErrRoomUnavailable, number)
	}

	room.Booked = true
	booking := h.ledger.Create(room, customer, h.now())
	h.catalog.SetBooked(number, true)
	h.logger.Info("room booked", log.Int("room", number), log.Int("booking", booking.ID))

	return booking, errors.Join(h.saveBookings(ctx), h.saveRooms(ctx))
}

// CancelBooking removes a booking, releases its room and rewrites both
// stores. It returns ErrBookingNotFound if no booking has the id.
func (h *Hotel) CancelBooking(ctx context.Context, id int) (domain.Booking, error) {
	booking, err := h.ledger.Remove(id)
	if err != nil {
		return domain.Booking{}, err
	}
	h.catalog.SetBooked(booking.Room.Number, false)
	h.logger.Info("booking cancelled", log.Int("room", booking.Room.Number), log.Int("booking", id))

	return booking, errors.Join(h.saveBookings(ctx), h.saveRooms(ctx))
}

// AvailableRooms yields the unbooked rooms in catalog order.
func (h *Hotel) AvailableRooms() iter.Seq[domain.Room] {
	return h.catalog.Available()
}

// AllRooms yields every room in catalog order.
func (h *Hotel) AllRooms() iter.Seq[domain.Room] {
	return h.catalog.All()
}

// AllBookings yields the active bookings in the order they were added.
func (h *Hotel) AllBookings() iter.Seq[domain.Booking] {
	return h.ledger.All()
}

// Room returns the room with the given number.
func (h *Hotel) Room(number int) (domain.Room, bool) {
	return h.catalog.Get(number)
}

// Booking returns the active booking with the given id.
func (h *Hotel) Booking(id int) (domain.Booking, bool) {
	return h.ledger.Get(id)
}

func (h *Hotel) saveRooms(ctx context.Context) error {
	if err := h.rooms.SaveRooms(ctx, h.catalog.All()); err != nil {
		h.logger.Error("save rooms failed", log.Err(err))
		return storageError("save rooms", err)
	}
	return nil
}

func (h *Hotel) saveBookings(ctx context.Context) error {
	if err := h.bookings.SaveBookings(ctx, h.ledger.All()); err != nil {
		h.logger.Error("save bookings failed", log.Err(err))
		return storageError("save bookings", err)
	}
	return nil
}

func storageError(op string, err error) error {
	if errors.Is(err, domain.ErrStorage) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
