package fs

import (
	"context"
	"fmt"
	"iter"

	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/internal/ports"
)

// DefaultBookingsFile is the bookings store name used when none is configured.
const DefaultBookingsFile = "bookings.csv"

var _ ports.BookingStore = (*BookingFile)(nil)

// BookingFile implements ports.BookingStore on a comma-delimited file with
// one "id,roomNumber,roomCategory,name,phone,city,state,date" record per line.
type BookingFile struct {
	file *recordFile
	cats categoryResolver
}

// NewBookingFile creates a BookingFile at path. The file is created on first save.
func NewBookingFile(path string, opts ...Option) *BookingFile {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &BookingFile{
		file: newRecordFile(path, bookingFields, o.now),
		cats: categoryResolver{path: path, strict: o.strict, logger: o.logger},
	}
}

// LoadBookings reads every booking from the file. Each booking's room is
// rebuilt from the record's room fields and marked booked.
func (b *BookingFile) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := b.file.read()
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(records))
	for _, rec := range records {
		booking, err := decodeBooking(rec, b.cats)
		if err != nil {
			return nil, wrapPath(b.file.path, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// SaveBookings rewrites the file with bookings.
func (b *BookingFile) SaveBookings(ctx context.Context, bookings iter.Seq[domain.Booking]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var records [][]string
	for booking := range bookings {
		records = append(records, encodeBooking(booking))
	}
	return b.file.write(records)
}

// Quarantine renames the file aside.
func (b *BookingFile) Quarantine(ctx context.Context) (string, error) {
	return b.file.quarantine()
}

// Path returns the file path.
func (b *BookingFile) Path() string {
	return b.file.path
}

// ModifiedExternally reports whether another process changed the file
// since it was last loaded or saved.
func (b *BookingFile) ModifiedExternally() (bool, error) {
	return b.file.modifiedExternally()
}

func wrapPath(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}
