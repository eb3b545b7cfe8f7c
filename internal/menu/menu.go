// Package menu implements the interactive, line-based front end: a role
// selection followed by guest or staff sub-menus. It holds no state of its
// own and reports every repository outcome as a message.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/pkg/log"
)

// Service is the repository surface the menu drives.
type Service interface {
	AddRoom(ctx context.Context, number int, category domain.Category) (domain.Room, error)
	BookRoom(ctx context.Context, number int, customer domain.Customer) (domain.Booking, error)
	CancelBooking(ctx context.Context, id int) (domain.Booking, error)
	AvailableRooms() iter.Seq[domain.Room]
	AllRooms() iter.Seq[domain.Room]
	AllBookings() iter.Seq[domain.Booking]
}

// Menu runs the interactive loop over an input and an output stream.
type Menu struct {
	svc    Service
	in     io.Reader
	out    io.Writer
	logger log.Logger
	lines  <-chan string
}

// New creates a Menu. A nil logger discards diagnostics.
func New(svc Service, in io.Reader, out io.Writer, logger log.Logger) *Menu {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Menu{svc: svc, in: in, out: out, logger: logger}
}

// Run shows the role menu until the actor exits or input ends, and returns
// nil in both cases. It returns ctx.Err() if ctx is cancelled while waiting
// for input. Saving on shutdown is left to the caller.
func (m *Menu) Run(ctx context.Context) error {
	m.lines = readLines(ctx, m.in)
	for {
		m.println("\nWelcome to Hotel Booking System")
		m.println("Please select your role:")
		m.println("1. Client")
		m.println("2. Hotel Staff")
		m.println("3. Exit")

		choice, err := m.readChoice(ctx)
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case 1:
			err = m.guestMenu(ctx)
		case 2:
			err = m.staffMenu(ctx)
		case 3:
			m.println("Exiting system. Goodbye!")
			return nil
		default:
			m.println("Invalid choice.")
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		m.logger.Debug("menu input ended")
		m.println("\nEnd of input. Goodbye!")
		return nil
	}
	m.logger.Debug("menu interrupted", log.Err(err))
	return err
}

func (m *Menu) guestMenu(ctx context.Context) error {
	for {
		m.println("\nClient Menu:")
		m.println("1. View Available Rooms")
		m.println("2. Book a Room")
		m.println("3. Cancel Booking")
		m.println("4. Back")

		choice, err := m.readChoice(ctx)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			m.showRooms(m.svc.AvailableRooms(), false, "No available rooms.")
		case 2:
			err = m.bookRoom(ctx)
		case 3:
			err = m.cancelBooking(ctx)
		case 4:
			return nil
		default:
			m.println("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) staffMenu(ctx context.Context) error {
	for {
		m.println("\nHotel Staff Menu:")
		m.println("1. Add Room")
		m.println("2. View All Rooms")
		m.println("3. View All Bookings")
		m.println("4. Back")

		choice, err := m.readChoice(ctx)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.addRoom(ctx)
		case 2:
			m.showRooms(m.svc.AllRooms(), true, "No rooms.")
		case 3:
			m.showBookings()
		case 4:
			return nil
		default:
			m.println("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) showRooms(rooms iter.Seq[domain.Room], withBooked bool, empty string) {
	found := false
	for r := range rooms {
		m.println(FormatRoom(r, withBooked))
		found = true
	}
	if !found {
		m.println(empty)
	}
}

func (m *Menu) showBookings() {
	found := false
	for b := range m.svc.AllBookings() {
		m.println(FormatBooking(b))
		found = true
	}
	if !found {
		m.println("No bookings.")
	}
}

func (m *Menu) bookRoom(ctx context.Context) error {
	number, err := m.readInt(ctx, "Enter room number to book: ")
	if err != nil {
		return err
	}
	var c domain.Customer
	for _, f := range []struct {
		prompt string
		field  string
		dst    *string
	}{
		{"Enter name: ", "name", &c.Name},
		{"Enter phone: ", "phone", &c.Phone},
		{"Enter city: ", "city", &c.City},
		{"Enter state: ", "state", &c.State},
	} {
		if *f.dst, err = m.readText(ctx, f.prompt, f.field); err != nil {
			return err
		}
	}

	booking, err := m.svc.BookRoom(ctx, number, c)
	switch {
	case err == nil:
		m.printf("Room booked successfully. Booking ID: %d\n", booking.ID)
	case errors.Is(err, domain.ErrRoomUnavailable):
		m.println("Room not available or already booked.")
	case errors.Is(err, domain.ErrStorage):
		m.printf("Room booked successfully. Booking ID: %d\n", booking.ID)
		m.reportSaveFailure(err)
	default:
		m.printf("Could not book room: %v\n", err)
	}
	return nil
}

func (m *Menu) cancelBooking(ctx context.Context) error {
	id, err := m.readInt(ctx, "Enter booking ID to cancel: ")
	if err != nil {
		return err
	}

	_, err = m.svc.CancelBooking(ctx, id)
	switch {
	case err == nil:
		m.println("Booking cancelled successfully.")
	case errors.Is(err, domain.ErrBookingNotFound):
		m.println("Booking ID not found.")
	case errors.Is(err, domain.ErrStorage):
		m.println("Booking cancelled successfully.")
		m.reportSaveFailure(err)
	default:
		m.printf("Could not cancel booking: %v\n", err)
	}
	return nil
}

func (m *Menu) addRoom(ctx context.Context) error {
	number, err := m.readInt(ctx, "Enter room number: ")
	if err != nil {
		return err
	}
	category, err := m.readCategory(ctx)
	if err != nil {
		return err
	}

	_, err = m.svc.AddRoom(ctx, number, category)
	switch {
	case err == nil:
		m.println("Room added successfully.")
	case errors.Is(err, domain.ErrDuplicateRoom):
		m.println("Room number already exists.")
	case errors.Is(err, domain.ErrStorage):
		m.println("Room added successfully.")
		m.reportSaveFailure(err)
	default:
		m.printf("Could not add room: %v\n", err)
	}
	return nil
}

func (m *Menu) reportSaveFailure(err error) {
	m.printf("Warning: the change could not be saved: %v\n", err)
}

func (m *Menu) readCategory(ctx context.Context) (domain.Category, error) {
	categories := domain.Categories()
	options := make([]string, len(categories))
	for i, c := range categories {
		options[i] = fmt.Sprintf("%d. %s", i+1, c)
	}
	for {
		m.println("Select room type: " + strings.Join(options, " "))
		n, err := m.readInt(ctx, "")
		if err != nil {
			return 0, err
		}
		if n >= 1 && n <= len(categories) {
			return categories[n-1], nil
		}
		m.println("Invalid choice.")
	}
}

// readChoice returns the selected menu number, or -1 for unparsable input.
func (m *Menu) readChoice(ctx context.Context) (int, error) {
	line, err := m.readLine(ctx)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func (m *Menu) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		m.printf("%s", prompt)
		line, err := m.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		m.println("Invalid number.")
	}
}

func (m *Menu) readText(ctx context.Context, prompt, field string) (string, error) {
	for {
		m.printf("%s", prompt)
		line, err := m.readLine(ctx)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if err := domain.ValidateText(field, line); err != nil {
			m.printf("Invalid %s: must not contain commas, quotes or line breaks.\n", field)
			continue
		}
		return line, nil
	}
}

func (m *Menu) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// readLines feeds lines from in until it ends or ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}
