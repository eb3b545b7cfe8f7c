package menu

import (
	"fmt"
	"strconv"

	"github.com/bft-labs/bookinn/internal/domain"
)

// FormatRoom renders a room listing line. withBooked adds the booked flag,
// as shown to staff.
func FormatRoom(r domain.Room, withBooked bool) string {
	line := fmt.Sprintf("Room Number: %d, Type: %s, Price: %s", r.Number, r.Category, formatPrice(r.Price()))
	if withBooked {
		line += ", Booked: " + strconv.FormatBool(r.Booked)
	}
	return line
}

// FormatBooking renders a booking listing line.
func FormatBooking(b domain.Booking) string {
	return fmt.Sprintf("Booking ID: %d, Room: %d, Customer: %s, Date: %s",
		b.ID, b.Room.Number, b.Customer.Name, b.FormatDate())
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
