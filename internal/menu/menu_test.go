package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/bookinn/internal/domain"
)

// fakeService records calls and mimics the repository's outcomes.
type fakeService struct {
	rooms    []domain.Room
	bookings []domain.Booking
	nextID   int
	saveErr  error
	added    []domain.Room
	booked   []domain.Customer
}

func (f *fakeService) AddRoom(ctx context.Context, number int, category domain.Category) (domain.Room, error) {
	for _, r := range f.rooms {
		if r.Number == number {
			return domain.Room{}, fmt.Errorf("%w: %d", domain.ErrDuplicateRoom, number)
		}
	}
	room := domain.NewRoom(number, category)
	f.rooms = append(f.rooms, room)
	f.added = append(f.added, room)
	return room, f.saveErr
}

func (f *fakeService) BookRoom(ctx context.Context, number int, customer domain.Customer) (domain.Booking, error) {
	for i, r := range f.rooms {
		if r.Number == number && !r.Booked {
			f.rooms[i].Booked = true
			f.nextID++
			b := domain.Booking{ID: f.nextID, Room: f.rooms[i], Customer: customer}
			f.bookings = append(f.bookings, b)
			f.booked = append(f.booked, customer)
			return b, f.saveErr
		}
	}
	return domain.Booking{}, domain.ErrRoomUnavailable
}

func (f *fakeService) CancelBooking(ctx context.Context, id int) (domain.Booking, error) {
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = slices.Delete(f.bookings, i, i+1)
			return b, f.saveErr
		}
	}
	return domain.Booking{}, domain.ErrBookingNotFound
}

func (f *fakeService) AvailableRooms() iter.Seq[domain.Room] {
	return func(yield func(domain.Room) bool) {
		for _, r := range f.rooms {
			if !r.Booked && !yield(r) {
				return
			}
		}
	}
}

func (f *fakeService) AllRooms() iter.Seq[domain.Room] {
	return slices.Values(f.rooms)
}

func (f *fakeService) AllBookings() iter.Seq[domain.Booking] {
	return slices.Values(f.bookings)
}

func run(t *testing.T, svc Service, input ...string) string {
	t.Helper()
	var out bytes.Buffer
	m := New(svc, strings.NewReader(strings.Join(input, "\n")+"\n"), &out, nil)
	require.NoError(t, m.Run(context.Background()))
	return out.String()
}

func TestMenu_ExitSaysGoodbye(t *testing.T) {
	out := run(t, &fakeService{}, "3")
	assert.Contains(t, out, "Welcome to Hotel Booking System")
	assert.Contains(t, out, "Exiting system. Goodbye!")
}

func TestMenu_EndOfInputEndsRun(t *testing.T) {
	var out bytes.Buffer
	m := New(&fakeService{}, strings.NewReader(""), &out, nil)
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "End of input")
}

func TestMenu_InvalidChoices(t *testing.T) {
	out := run(t, &fakeService{}, "abc", "9", "1", "x", "4", "3")
	assert.Equal(t, 3, strings.Count(out, "Invalid choice."))
	assert.Contains(t, out, "Client Menu:")
}

func TestMenu_StaffAddsRoom(t *testing.T) {
	svc := &fakeService{}
	out := run(t, svc,
		"2", "1", "101", "1",
		"1", "102", "5", "2",
		"1", "101", "2",
		"4", "3",
	)

	require.Len(t, svc.added, 2)
	assert.Equal(t, domain.CategoryDeluxe, svc.added[0].Category)
	assert.Equal(t, domain.CategorySuite, svc.added[1].Category)
	assert.Equal(t, 2, strings.Count(out, "Room added successfully."))
	assert.Contains(t, out, "Select room type: 1. Deluxe 2. Suite")
	assert.Contains(t, out, "Room number already exists.")
}

func TestMenu_InvalidNumberReprompts(t *testing.T) {
	svc := &fakeService{}
	out := run(t, svc, "2", "1", "one-oh-one", "101", "1", "4", "3")

	assert.Contains(t, out, "Invalid number.")
	require.Len(t, svc.added, 1)
	assert.Equal(t, 101, svc.added[0].Number)
}

func TestMenu_GuestBooksAndCancels(t *testing.T) {
	svc := &fakeService{rooms: []domain.Room{
		domain.NewRoom(101, domain.CategoryDeluxe),
		domain.NewRoom(102, domain.CategorySuite),
	}}
	out := run(t, svc,
		"1", "1",
		"2", "101", "Ann", "555", "NYC", "NY",
		"2", "101", "Bo", "777", "Austin", "TX",
		"1",
		"3", "1",
		"3", "1",
		"4", "3",
	)

	assert.Contains(t, out, "Room Number: 101, Type: Deluxe, Price: 1500.0")
	assert.Contains(t, out, "Room Number: 102, Type: Suite, Price: 2500.0")
	assert.Contains(t, out, "Room booked successfully. Booking ID: 1")
	assert.Contains(t, out, "Room not available or already booked.")
	assert.Contains(t, out, "Booking cancelled successfully.")
	assert.Contains(t, out, "Booking ID not found.")
	require.Len(t, svc.booked, 1)
	assert.Equal(t, domain.Customer{Name: "Ann", Phone: "555", City: "NYC", State: "NY"}, svc.booked[0])
}

func TestMenu_RejectsDelimiterInText(t *testing.T) {
	svc := &fakeService{rooms: []domain.Room{domain.NewRoom(101, domain.CategoryDeluxe)}}
	out := run(t, svc,
		"1", "2", "101", "Smith, Ann", "Ann Smith", "555", "New York, NY", "NYC", "NY",
		"4", "3",
	)

	assert.Contains(t, out, "Invalid name: must not contain commas, quotes or line breaks.")
	assert.Contains(t, out, "Invalid city: must not contain commas, quotes or line breaks.")
	require.Len(t, svc.booked, 1)
	assert.Equal(t, "Ann Smith", svc.booked[0].Name)
	assert.Equal(t, "NYC", svc.booked[0].City)
}

func TestMenu_NoAvailableRooms(t *testing.T) {
	out := run(t, &fakeService{}, "1", "1", "4", "2", "2", "3", "4", "3")
	assert.Contains(t, out, "No available rooms.")
	assert.Contains(t, out, "No rooms.")
	assert.Contains(t, out, "No bookings.")
}

func TestMenu_StaffListings(t *testing.T) {
	room := domain.Room{Number: 101, Category: domain.CategoryDeluxe, Booked: true}
	svc := &fakeService{
		rooms: []domain.Room{room},
		bookings: []domain.Booking{{
			ID:       4,
			Room:     room,
			Customer: domain.Customer{Name: "Ann"},
			Date:     time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		}},
	}
	out := run(t, svc, "2", "2", "3", "4", "3")

	assert.Contains(t, out, "Room Number: 101, Type: Deluxe, Price: 1500.0, Booked: true")
	assert.Contains(t, out, "Booking ID: 4, Room: 101, Customer: Ann, Date: 2026-10-16")
}

func TestMenu_ReportsSaveFailureAfterSuccess(t *testing.T) {
	svc := &fakeService{saveErr: fmt.Errorf("%w: disk full", domain.ErrStorage)}
	out := run(t, svc, "2", "1", "101", "2", "4", "3")

	assert.Contains(t, out, "Room added successfully.")
	assert.Contains(t, out, "Warning: the change could not be saved")
	assert.Len(t, svc.added, 1)
}

func TestMenu_CancelledContextStopsRun(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(&fakeService{}, pr, io.Discard, nil).Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
