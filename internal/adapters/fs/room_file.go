package fs

import (
	"context"
	"iter"

	"github.com/bft-labs/bookinn/internal/domain"
	"github.com/bft-labs/bookinn/internal/ports"
)

// DefaultRoomsFile is the rooms store name used when none is configured.
const DefaultRoomsFile = "rooms.csv"

var _ ports.RoomStore = (*RoomFile)(nil)

// RoomFile implements ports.RoomStore on a comma-delimited file with one
// "number,category,booked" record per line.
type RoomFile struct {
	file *recordFile
	cats categoryResolver
}

// NewRoomFile creates a RoomFile at path. The file is created on first save.
func NewRoomFile(path string, opts ...Option) *RoomFile {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RoomFile{
		file: newRecordFile(path, roomFields, o.now),
		cats: categoryResolver{path: path, strict: o.strict, logger: o.logger},
	}
}

// LoadRooms reads every room from the file.
func (r *RoomFile) LoadRooms(ctx context.Context) ([]domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := r.file.read()
	if err != nil {
		return nil, err
	}
	rooms := make([]domain.Room, 0, len(records))
	for _, rec := range records {
		room, err := decodeRoom(rec, r.cats)
		if err != nil {
			return nil, wrapPath(r.file.path, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// SaveRooms rewrites the file with rooms.
func (r *RoomFile) SaveRooms(ctx context.Context, rooms iter.Seq[domain.Room]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var records [][]string
	for room := range rooms {
		records = append(records, encodeRoom(room))
	}
	return r.file.write(records)
}

// Quarantine renames the file aside.
func (r *RoomFile) Quarantine(ctx context.Context) (string, error) {
	return r.file.quarantine()
}

// Path returns the file path.
func (r *RoomFile) Path() string {
	return r.file.path
}

// ModifiedExternally reports whether another process changed the file
// since it was last loaded or saved.
func (r *RoomFile) ModifiedExternally() (bool, error) {
	return r.file.modifiedExternally()
}
