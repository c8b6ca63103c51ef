// SPDX-License-Identifier: MIT

package mabipack

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Reader provides read-only access to a parsed pack container.
type Reader struct {
	// ra is the underlying random-access source for content reads.
	ra io.ReaderAt
	// file is set when Reader owns an *os.File opened via Open.
	file *os.File
	// header is the validated container preamble.
	header HeaderInfo
	// entries stores parsed immutable index records.
	entries []FileEntry
	// dataStart is the absolute offset of the first content byte.
	dataStart int64
	// mu guards closed state and close operation.
	mu sync.Mutex
	// closed reports whether Close was already called.
	closed bool
}

// Open opens a pack file by path and parses the header and index.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}

	r, err := NewReaderFromReaderAt(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r.file = f
	return r, nil
}

// NewReaderFromReaderAt parses a container from an existing random-access
// source.
func NewReaderFromReaderAt(ra io.ReaderAt) (*Reader, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	r := &Reader{ra: ra}
	if err := r.parse(ra); err != nil {
		return nil, err
	}

	return r, nil
}

// Header returns the validated container preamble.
func (r *Reader) Header() HeaderInfo {
	if r == nil {
		return HeaderInfo{}
	}

	return r.header
}

// Entries returns a copy of the parsed index records in container order.
func (r *Reader) Entries() []FileEntry {
	if r == nil {
		return nil
	}

	entries := make([]FileEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Close closes the underlying file if the reader owns one.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	if r.file != nil {
		return r.file.Close()
	}

	return nil
}

// ReadEntry reads the full decompressed content of the named entry.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	if r == nil || r.ra == nil {
		return nil, ErrNilReader
	}

	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	lookup := NormalizePath(name)
	for i := range r.entries {
		if r.entries[i].Name == lookup {
			return r.readEntryContent(r.entries[i])
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// OpenEntry returns a reader over the decoded content of the named entry.
// The whole payload is decoded up front; the returned reader never touches
// the underlying file and may outlive Close.
func (r *Reader) OpenEntry(name string) (io.ReadCloser, error) {
	raw, err := r.ReadEntry(name)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(raw)), nil
}

// checkOpen reports ErrClosed after Close was called.
func (r *Reader) checkOpen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	return nil
}

// parse reads and validates the header, then decodes the whole index region
// in one block.
func (r *Reader) parse(ra io.ReaderAt) error {
	headerBuf := make([]byte, headerSize)
	if _, err := ra.ReadAt(headerBuf, 0); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: short header", ErrBadFormat)
		}

		return fmt.Errorf("read header: %w", err)
	}

	header, err := decodeHeader(headerBuf)
	if err != nil {
		return err
	}

	index := make([]byte, header.IndexSize)
	if _, err := ra.ReadAt(index, headerSize); len(index) > 0 && err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: short index region", ErrBadFormat)
		}

		return fmt.Errorf("read index: %w", err)
	}

	entries, err := decodeIndex(index, header.FileCount)
	if err != nil {
		return err
	}

	for i := range entries {
		end := uint64(entries[i].Offset) + uint64(entries[i].RawSize)
		if end > uint64(header.ContentSize) {
			return fmt.Errorf("%w: entry %s extends past content region",
				ErrBadFormat, entries[i].Name)
		}
	}

	r.header = header
	r.entries = entries
	r.dataStart = int64(headerSize) + int64(header.IndexSize)

	return nil
}

// readEntryContent seeks to the stored payload, reads exactly RawSize bytes,
// and runs the extract side of the transform pipeline.
func (r *Reader) readEntryContent(entry FileEntry) ([]byte, error) {
	packed := make([]byte, entry.RawSize)
	if _, err := r.ra.ReadAt(packed, r.dataStart+int64(entry.Offset)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("entry %s: %w: short content read", entry.Name, ErrCorruptedEntry)
		}

		return nil, fmt.Errorf("entry %s: read content: %w", entry.Name, err)
	}

	raw, err := unpackEntryContent(packed, entry)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry.Name, err)
	}

	return raw, nil
}
