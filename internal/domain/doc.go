// Package domain contains the core entities and value objects for bookinn.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (files, terminals, logging) and holds only the
// rules that every other layer relies on.
//
// # Entities
//
//   - [Room]: a hotel room keyed by its number, with a [Category] and a booked flag
//   - [Customer]: the guest details captured with each booking
//   - [Booking]: an active reservation of one room by one customer on a date
//
// # Categories
//
// Room categories form a closed set. Each [Category] resolves its display
// name and nightly price through a fixed table rather than per-type code.
package domain
