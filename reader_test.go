// SPDX-License-Identifier: MIT

package mabipack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"testing"
)

// corruptCopy loads a packed file, applies mutate, and writes the result to
// a fresh file.
func corruptCopy(t *testing.T, path string, mutate func(raw []byte) []byte) string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	outPath := path + ".corrupt"
	if err := os.WriteFile(outPath, mutate(raw), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return outPath
}

func TestOpenRejectsMismatchedFileCount(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("x"))}, 1)
	badPath := corruptCopy(t, outPath, func(raw []byte) []byte {
		binary.LittleEndian.PutUint32(raw[0x200:], 99)
		return raw
	})

	if _, err := Open(badPath); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("x"))}, 1)
	badPath := corruptCopy(t, outPath, func(raw []byte) []byte {
		raw[0] = 'Q'
		return raw
	})

	if _, err := Open(badPath); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestOpenRejectsShortFile(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("x"))}, 1)
	badPath := corruptCopy(t, outPath, func(raw []byte) []byte {
		return raw[:0x100]
	})

	if _, err := Open(badPath); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestOpenRejectsEntryPastContentRegion(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("x"))}, 1)
	badPath := corruptCopy(t, outPath, func(raw []byte) []byte {
		// Raw size lives 12 bytes into the record tail, after the 16-byte
		// class-0 name block.
		binary.LittleEndian.PutUint32(raw[0x220+16+12:], 0xffff)
		return raw
	})

	if _, err := Open(badPath); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestReadEntryTruncatedContent(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("hello"))}, 7)
	badPath := corruptCopy(t, outPath, func(raw []byte) []byte {
		return raw[:len(raw)-1]
	})

	r, err := Open(badPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = r.Close() }()

	if _, err := r.ReadEntry("x.txt"); !errors.Is(err, ErrCorruptedEntry) {
		t.Fatalf("expected ErrCorruptedEntry, got %v", err)
	}
}

func TestReadEntryFlippedContent(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", bytes.Repeat([]byte("abc"), 100))}, 7)
	badPath := corruptCopy(t, outPath, func(raw []byte) []byte {
		raw[len(raw)-1] ^= 0xff
		return raw
	})

	r, err := Open(badPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = r.Close() }()

	if _, err := r.ReadEntry("x.txt"); !errors.Is(err, ErrCorruptedEntry) {
		t.Fatalf("expected ErrCorruptedEntry, got %v", err)
	}
}

func TestReadEntryNotFound(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("x"))}, 1)

	r, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = r.Close() }()

	if _, err := r.ReadEntry("missing.txt"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestReaderClosed(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("x"))}, 1)

	r, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := r.ReadEntry("x.txt"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestOpenEntry(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("stream me"))}, 2)

	r, err := Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = r.Close() }()

	rc, err := r.OpenEntry("x.txt")
	if err != nil {
		t.Fatalf("OpenEntry: %v", err)
	}
	defer func() { _ = rc.Close() }()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "stream me" {
		t.Fatalf("content %q, want stream me", got)
	}

	if _, err := r.OpenEntry("missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestNewReaderFromReaderAt(t *testing.T) {
	t.Parallel()

	outPath := packToFile(t, []Input{memInput("x.txt", []byte("payload"))}, 3)
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	r, err := NewReaderFromReaderAt(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("NewReaderFromReaderAt: %v", err)
	}
	defer func() { _ = r.Close() }()

	got, err := r.ReadEntry("x.txt")
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("content %q, want payload", got)
	}

	if _, err := NewReaderFromReaderAt(nil); !errors.Is(err, ErrNilReader) {
		t.Fatalf("expected ErrNilReader, got %v", err)
	}
}
