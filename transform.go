// SPDX-License-Identifier: MIT

package mabipack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Content transform pipeline. Pack direction compresses with zlib framing
// and XORs the result with the version keystream; extract reverses both
// steps and validates the decompressed length against the index record.
// Every entry is transformed independently, with no shared dictionary.

// packEntryContent transforms raw bytes into their stored form.
func packEntryContent(raw []byte, version uint32) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	packed := buf.Bytes()
	newKeystream(version).apply(packed)

	return packed, nil
}

// unpackEntryContent transforms stored bytes back into raw content.
// It mutates packed in place during de-obfuscation; callers must own the
// buffer.
func unpackEntryContent(packed []byte, entry FileEntry) ([]byte, error) {
	newKeystream(entry.Version).apply(packed)

	zr, err := zlib.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptedEntry, err)
	}
	defer func() { _ = zr.Close() }()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptedEntry, err)
	}

	if len(raw) != int(entry.UncompressedSize) {
		return nil, fmt.Errorf("%w: decoded %d bytes, index records %d",
			ErrCorruptedEntry, len(raw), entry.UncompressedSize)
	}

	return raw, nil
}
