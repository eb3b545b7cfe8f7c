package ports

import (
	"context"
	"iter"

	"github.com/bft-labs/bookinn/internal/domain"
)

// RoomStore persists the room catalog.
type RoomStore interface {
	// LoadRooms returns every stored room in store order.
	// Returns no rooms and a nil error if the store does not exist.
	// Any malformed record fails the whole load.
	LoadRooms(ctx context.Context) ([]domain.Room, error)

	// SaveRooms replaces the store contents with rooms, in sequence order.
	SaveRooms(ctx context.Context, rooms iter.Seq[domain.Room]) error

	// Quarantine moves the store aside so the next save starts fresh
	// without destroying it. It returns the new location, or "" if there
	// was nothing to move.
	Quarantine(ctx context.Context) (string, error)
}

// BookingStore persists the booking ledger.
type BookingStore interface {
	// LoadBookings returns every stored booking in store order. Each
	// booking's Room is rebuilt from the record and marked booked.
	// Returns no bookings and a nil error if the store does not exist.
	LoadBookings(ctx context.Context) ([]domain.Booking, error)

	// SaveBookings replaces the store contents with bookings, in sequence order.
	SaveBookings(ctx context.Context, bookings iter.Seq[domain.Booking]) error

	// Quarantine moves the store aside; see RoomStore.Quarantine.
	Quarantine(ctx context.Context) (string, error)
}
