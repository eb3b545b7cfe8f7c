// Package ports defines the interfaces that connect the hotel repository
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [RoomStore]: loads and rewrites the rooms store
//   - [BookingStore]: loads and rewrites the bookings store
//
// The repository (internal/hotel) depends only on these interfaces. The
// file adapters in internal/adapters/fs implement them; tests substitute
// in-memory or failing implementations.
package ports
