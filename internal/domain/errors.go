package domain

import "errors"

// Domain errors represent error conditions in the bookinn domain.
// They are returned by the repository and can be checked with errors.Is.
var (
	// ErrDuplicateRoom is returned when a room number is already in the catalog.
	ErrDuplicateRoom = errors.New("bookinn: room number already exists")

	// ErrRoomUnavailable is returned when a room is unknown or already booked.
	ErrRoomUnavailable = errors.New("bookinn: room not available or already booked")

	// ErrBookingNotFound is returned when no active booking has the given id.
	ErrBookingNotFound = errors.New("bookinn: booking not found")

	// ErrStorage wraps failures reading or writing a store file.
	ErrStorage = errors.New("bookinn: storage error")

	// ErrMalformedRecord is returned when a store line cannot be parsed.
	ErrMalformedRecord = errors.New("bookinn: malformed record")

	// ErrUnknownCategory is returned when a category name or selection is not recognized.
	ErrUnknownCategory = errors.New("bookinn: unknown room category")

	// ErrInvalidField is returned when free text would corrupt a store record.
	ErrInvalidField = errors.New("bookinn: invalid field")
)
