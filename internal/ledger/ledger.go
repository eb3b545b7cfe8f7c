// Package ledger holds the active bookings and allocates booking ids.
package ledger

import (
	"fmt"
	"iter"
	"time"

	"github.com/bft-labs/bookinn/internal/domain"
)

// Ledger is the in-memory booking collection. Bookings keep the order in
// which they were added, whether created or restored from a store.
//
// The next id is always one past the largest id the ledger has ever seen.
// It is never rewound, not even by Reset. It is not safe for concurrent use.
type Ledger struct {
	bookings []domain.Booking
	next     int
}

// New returns an empty ledger whose first booking gets id 1.
func New() *Ledger {
	return &Ledger{next: 1}
}

// Create allocates the next id and appends a booking of room for customer.
func (l *Ledger) Create(room domain.Room, customer domain.Customer, date time.Time) domain.Booking {
	b := domain.Booking{
		ID:       l.next,
		Room:     room,
		Customer: customer,
		Date:     domain.DateOf(date),
	}
	l.next++
	l.bookings = append(l.bookings, b)
	return b
}

// Restore appends a booking read from a store and advances the allocator
// past its id.
func (l *Ledger) Restore(b domain.Booking) {
	l.observe(b.ID)
	l.bookings = append(l.bookings, b)
}

func (l *Ledger) observe(id int) {
	if id >= l.next {
		l.next = id + 1
	}
}

// Remove deletes the booking with the given id and returns it.
func (l *Ledger) Remove(id int) (domain.Booking, error) {
	for i, b := range l.bookings {
		if b.ID != id {
			continue
		}
		l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
		return b, nil
	}
	return domain.Booking{}, fmt.Errorf("%w: %d", domain.ErrBookingNotFound, id)
}

// Get returns the booking with the given id.
func (l *Ledger) Get(id int) (domain.Booking, bool) {
	for _, b := range l.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// All yields bookings in the order they were added.
func (l *Ledger) All() iter.Seq[domain.Booking] {
	return func(yield func(domain.Booking) bool) {
		for i := 0; i < len(l.bookings); i++ {
			if !yield(l.bookings[i]) {
				return
			}
		}
	}
}

// Len returns the number of active bookings.
func (l *Ledger) Len() int {
	return len(l.bookings)
}

// NextID returns the id the next Create will allocate.
func (l *Ledger) NextID() int {
	return l.next
}

// Reset removes every booking. The allocator keeps its position.
func (l *Ledger) Reset() {
	l.bookings = nil
}
