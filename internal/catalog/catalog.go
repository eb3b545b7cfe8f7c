// Package catalog holds the set of known rooms keyed by room number.
package catalog

import (
	"fmt"
	"iter"

	"github.com/bft-labs/bookinn/internal/domain"
)

// Catalog is the in-memory room collection. Rooms keep insertion order and
// are never removed. It is not safe for concurrent use.
type Catalog struct {
	rooms []domain.Room
	index map[int]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[int]int)}
}

// Add inserts room. It returns ErrDuplicateRoom and leaves the catalog
// unchanged if the number is already present.
func (c *Catalog) Add(room domain.Room) error {
	if _, ok := c.index[room.Number]; ok {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateRoom, room.Number)
	}
	c.index[room.Number] = len(c.rooms)
	c.rooms = append(c.rooms, room)
	return nil
}

// Get returns the room with the given number.
func (c *Catalog) Get(number int) (domain.Room, bool) {
	i, ok := c.index[number]
	if !ok {
		return domain.Room{}, false
	}
	return c.rooms[i], true
}

// Has reports whether a room with the given number exists.
func (c *Catalog) Has(number int) bool {
	_, ok := c.index[number]
	return ok
}

// SetBooked sets the booked flag of a room and reports whether it exists.
func (c *Catalog) SetBooked(number int, booked bool) bool {
	i, ok := c.index[number]
	if !ok {
		return false
	}
	c.rooms[i].Booked = booked
	return true
}

// All yields every room in insertion order. Each call reads current state.
func (c *Catalog) All() iter.Seq[domain.Room] {
	return func(yield func(domain.Room) bool) {
		for i := 0; i < len(c.rooms); i++ {
			if !yield(c.rooms[i]) {
				return
			}
		}
	}
}

// Available yields the unbooked rooms in insertion order.
func (c *Catalog) Available() iter.Seq[domain.Room] {
	return func(yield func(domain.Room) bool) {
		for room := range c.All() {
			if room.Booked {
				continue
			}
			if !yield(room) {
				return
			}
		}
	}
}

// Len returns the number of rooms.
func (c *Catalog) Len() int {
	return len(c.rooms)
}

// CountAvailable returns the number of unbooked rooms.
func (c *Catalog) CountAvailable() int {
	n := 0
	for range c.Available() {
		n++
	}
	return n
}

// Reset removes every room.
func (c *Catalog) Reset() {
	c.rooms = nil
	c.index = make(map[int]int)
}
