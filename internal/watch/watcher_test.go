package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/bookinn/internal/adapters/fs"
	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/pkg/log"
)

type warnLogger struct {
	mu    sync.Mutex
	paths []string
}

func (l *warnLogger) Debug(msg string, fields ...log.Field) {}
func (l *warnLogger) Info(msg string, fields ...log.Field)  {}
func (l *warnLogger) Error(msg string, fields ...log.Field) {}
func (l *warnLogger) Warn(msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range fields {
		if f.Key == "path" {
			l.paths = append(l.paths, f.Value.(string))
		}
	}
}

func (l *warnLogger) warned() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.paths)
}

func startWatcher(t *testing.T, logger log.Logger, stores ...Tracked) {
	t.Helper()
	w := New(Config{Debounce: 20 * time.Millisecond}, logger, stores...)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { require.NoError(t, w.Stop()) })
}

func TestWatcher_WarnsOnExternalEdit(t *testing.T) {
	dir := t.TempDir()
	rooms := fs.NewRoomFile(filepath.Join(dir, fs.DefaultRoomsFile))
	require.NoError(t, rooms.SaveRooms(context.Background(),
		slices.Values([]domain.Room{domain.NewRoom(101, domain.CategoryDeluxe)})))

	logger := &warnLogger{}
	startWatcher(t, logger, rooms)

	require.NoError(t, os.WriteFile(rooms.Path(), []byte("101,Suite,false\n"), 0o600))

	require.Eventually(t, func() bool {
		return slices.Contains(logger.warned(), filepath.Clean(rooms.Path()))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOwnWrites(t *testing.T) {
	dir := t.TempDir()
	rooms := fs.NewRoomFile(filepath.Join(dir, fs.DefaultRoomsFile))
	bookings := fs.NewBookingFile(filepath.Join(dir, fs.DefaultBookingsFile))

	logger := &warnLogger{}
	startWatcher(t, logger, rooms, bookings)

	ctx := context.Background()
	for i := range 3 {
		room := domain.NewRoom(100+i, domain.CategorySuite)
		require.NoError(t, rooms.SaveRooms(ctx, slices.Values([]domain.Room{room})))
	}
	require.NoError(t, bookings.SaveBookings(ctx, slices.Values([]domain.Booking(nil))))

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, logger.warned())
}

func TestWatcher_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	rooms := fs.NewRoomFile(filepath.Join(dir, fs.DefaultRoomsFile))

	logger := &warnLogger{}
	startWatcher(t, logger, rooms)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello\n"), 0o600))

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, logger.warned())
}

func TestWatcher_StartCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	rooms := fs.NewRoomFile(filepath.Join(dir, fs.DefaultRoomsFile))

	startWatcher(t, nil, rooms)
	assert.DirExists(t, dir)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w := New(Config{}, nil)
	assert.NoError(t, w.Stop())
}
