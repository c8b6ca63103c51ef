// SPDX-License-Identifier: MIT

package mabipack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// entryConstant is written into every index record tail. The reader never
// consumes it; its meaning is unknown and it is preserved verbatim for
// compatibility.
const entryConstant = 1

// entryRecordSize returns the full index record size for a name: string
// block plus the fixed tail.
func entryRecordSize(name string) int {
	blockSize, _ := stringBlockSize(len(name))
	return blockSize + entryTailSize
}

// writeFileEntry serializes one index record and returns its size.
// The tail carries five timestamps (create, create, access, modify, modify);
// extraction ignores them.
func writeFileEntry(w io.Writer, entry FileEntry, times FileTimes) (int, error) {
	blockSize, err := writeStringBlock(w, entry.Name)
	if err != nil {
		return 0, err
	}

	var tail [entryTailSize]byte
	binary.LittleEndian.PutUint32(tail[0:4], entry.Version)
	// tail[4:8] stays zero (reserved).
	binary.LittleEndian.PutUint32(tail[8:12], entry.Offset)
	binary.LittleEndian.PutUint32(tail[12:16], entry.RawSize)
	binary.LittleEndian.PutUint32(tail[16:20], entry.UncompressedSize)
	binary.LittleEndian.PutUint32(tail[20:24], entryConstant)

	created := filetimeFromTime(times.Created)
	accessed := filetimeFromTime(times.Accessed)
	modified := filetimeFromTime(times.Modified)
	binary.LittleEndian.PutUint64(tail[24:32], created)
	binary.LittleEndian.PutUint64(tail[32:40], created)
	binary.LittleEndian.PutUint64(tail[40:48], accessed)
	binary.LittleEndian.PutUint64(tail[48:56], modified)
	binary.LittleEndian.PutUint64(tail[56:64], modified)

	if _, err := w.Write(tail[:]); err != nil {
		return 0, fmt.Errorf("write entry fields: %w", err)
	}

	return blockSize + entryTailSize, nil
}

// readFileEntry decodes one index record from r.
func readFileEntry(r io.Reader) (FileEntry, error) {
	name, _, err := readStringBlock(r)
	if err != nil {
		return FileEntry{}, err
	}

	var tail [entryTailSize]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return FileEntry{}, fmt.Errorf("read entry fields: %w", err)
	}

	return FileEntry{
		Name:             name,
		Version:          binary.LittleEndian.Uint32(tail[0:4]),
		Offset:           binary.LittleEndian.Uint32(tail[8:12]),
		RawSize:          binary.LittleEndian.Uint32(tail[12:16]),
		UncompressedSize: binary.LittleEndian.Uint32(tail[16:20]),
	}, nil
}

// decodeIndex parses fileCount records from an index region buffer read in
// one block from directly after the header.
func decodeIndex(index []byte, fileCount uint32) ([]FileEntry, error) {
	r := bytes.NewReader(index)
	entries := make([]FileEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		entry, err := readFileEntry(r)
		if err != nil {
			return nil, fmt.Errorf("index record %d: %w", i, err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
