package fs

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bft-labs/bookinn/internal/domain"
)

// record is one parsed store line.
type record struct {
	line   int
	fields []string
}

// recordFile is a delimited-text file of fixed-width records that is
// always rewritten whole. It remembers the checksum of the contents it
// last read or wrote so that changes made by other processes can be told
// apart from its own.
type recordFile struct {
	path  string
	width int
	now   func() time.Time

	mu    sync.Mutex
	sum   uint32
	known bool
}

func newRecordFile(path string, width int, now func() time.Time) *recordFile {
	return &recordFile{path: path, width: width, now: now}
}

// read returns every record in the file, or nil if the file does not exist.
func (f *recordFile) read() ([]record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.known = false
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, f.path, err)
	}
	f.sum = crc32.ChecksumIEEE(data)
	f.known = true

	records, err := parseRecords(data, f.width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return records, nil
}

func parseRecords(data []byte, width int) ([]record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = width
	// Stores written before quoting existed may hold bare quotes.
	r.LazyQuotes = true

	var records []record
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("%w: line %d: %w", domain.ErrMalformedRecord, pe.StartLine, pe.Err)
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
		}
		line, _ := r.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

// write replaces the file with records. The new contents go to a
// temporary file that is renamed over the old one.
func (f *recordFile) write(records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrStorage, f.path, err)
	}
	data := buf.Bytes()

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorage, tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %w", domain.ErrStorage, f.path, err)
	}

	f.sum = crc32.ChecksumIEEE(data)
	f.known = true
	return nil
}

// quarantine renames the file to <path>.corrupt-<unix seconds>.
func (f *recordFile) quarantine() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return "", nil
	}
	dst := fmt.Sprintf("%s.corrupt-%d", f.path, f.now().Unix())
	if err := os.Rename(f.path, dst); err != nil {
		return "", fmt.Errorf("%w: quarantine %s: %w", domain.ErrStorage, f.path, err)
	}
	f.known = false
	return dst, nil
}

// modifiedExternally reports whether the file on disk differs from what
// this process last read or wrote. A file that appears where none was
// known, or disappears where one was, counts as modified.
func (f *recordFile) modifiedExternally() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return f.known, nil
		}
		return false, err
	}
	if !f.known {
		return true, nil
	}
	return crc32.ChecksumIEEE(data) != f.sum, nil
}
