package domain

import "time"

// DateLayout is the calendar-date form used in the bookings store.
const DateLayout = "2006-01-02"

// Booking is an active reservation. Room is a snapshot of the booked room
// taken when the booking was created; the catalog owns the live record.
type Booking struct {
	ID       int
	Room     Room
	Customer Customer
	Date     time.Time
}

// DateOf truncates t to its calendar date in t's location, expressed in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the booking date as YYYY-MM-DD.
func (b Booking) FormatDate() string {
	return b.Date.Format(DateLayout)
}
