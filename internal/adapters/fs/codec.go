package fs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/pkg/log"
)

// Record layouts.
//
//	rooms:    number,category,booked
//	bookings: id,roomNumber,roomCategory,customerName,customerPhone,city,state,date
const (
	roomFields    = 3
	bookingFields = 8
)

func encodeRoom(r domain.Room) []string {
	return []string{
		strconv.Itoa(r.Number),
		r.Category.String(),
		strconv.FormatBool(r.Booked),
	}
}

func encodeBooking(b domain.Booking) []string {
	return []string{
		strconv.Itoa(b.ID),
		strconv.Itoa(b.Room.Number),
		b.Room.Category.String(),
		b.Customer.Name,
		b.Customer.Phone,
		b.Customer.City,
		b.Customer.State,
		b.FormatDate(),
	}
}

// categoryResolver turns category text into a Category, either strictly or
// with the historical "anything but Deluxe is a Suite" fallback.
type categoryResolver struct {
	path   string
	strict bool
	logger log.Logger
}

func (c categoryResolver) resolve(name string, line int) (domain.Category, error) {
	if c.strict {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return 0, malformed(line, "category", err)
		}
		return cat, nil
	}
	cat, ok := domain.ParseCategoryLenient(name)
	if !ok {
		c.logger.Warn("unrecognized room category, reading as "+cat.String(),
			log.String("path", c.path),
			log.Int("line", line),
			log.String("category", name),
		)
	}
	return cat, nil
}

func decodeRoom(rec record, cats categoryResolver) (domain.Room, error) {
	number, err := strconv.Atoi(rec.fields[0])
	if err != nil {
		return domain.Room{}, malformed(rec.line, "room number", err)
	}
	category, err := cats.resolve(rec.fields[1], rec.line)
	if err != nil {
		return domain.Room{}, err
	}
	booked, err := strconv.ParseBool(rec.fields[2])
	if err != nil {
		return domain.Room{}, malformed(rec.line, "booked", err)
	}
	return domain.Room{Number: number, Category: category, Booked: booked}, nil
}

func decodeBooking(rec record, cats categoryResolver) (domain.Booking, error) {
	f := rec.fields
	id, err := strconv.Atoi(f[0])
	if err != nil {
		return domain.Booking{}, malformed(rec.line, "booking id", err)
	}
	number, err := strconv.Atoi(f[1])
	if err != nil {
		return domain.Booking{}, malformed(rec.line, "room number", err)
	}
	category, err := cats.resolve(f[2], rec.line)
	if err != nil {
		return domain.Booking{}, err
	}
	date, err := time.Parse(domain.DateLayout, f[7])
	if err != nil {
		return domain.Booking{}, malformed(rec.line, "date", err)
	}
	return domain.Booking{
		ID:   id,
		Room: domain.Room{Number: number, Category: category, Booked: true},
		Customer: domain.Customer{
			Name:  f[3],
			Phone: f[4],
			City:  f[5],
			State: f[6],
		},
		Date: date,
	}, nil
}

func malformed(line int, field string, err error) error {
	return fmt.Errorf("%w: line %d: %s: %w", domain.ErrMalformedRecord, line, field, err)
}
