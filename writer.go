// SPDX-License-Identifier: MIT

package mabipack

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// Pack writes a container to out from the given inputs. One version key
// covers the whole container: it is stored in the header, repeated in every
// index record, and seeds the content keystream.
//
// Inputs are processed strictly in the order given; entry i's content
// offset is the sum of the stored sizes of all entries before it. The header
// is written twice: a zero placeholder first, then the finalized preamble
// once every size is known.
func Pack(ctx context.Context, out io.WriteSeeker, inputs []Input, version uint32, opts PackOptions) (*PackResult, error) {
	startedAt := time.Now()

	if out == nil {
		return nil, ErrNilWriter
	}

	if ctx == nil {
		ctx = context.Background()
	}

	opts.applyDefaults()

	plan := make([]Input, len(inputs))
	copy(plan, inputs)
	indexSize := int64(0)
	for i := range plan {
		normalized, err := normalizeArchiveEntryPath(plan[i].Path)
		if err != nil {
			return nil, err
		}

		plan[i].Path = normalized
		indexSize += int64(entryRecordSize(normalized))
	}

	if indexSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: index of %d bytes", ErrSizeOverflow, indexSize)
	}

	placeholder := make([]byte, headerSize)
	if _, err := out.Write(placeholder); err != nil {
		return nil, fmt.Errorf("write header placeholder: %w", err)
	}

	contentStart := int64(headerSize) + indexSize
	indexOff := int64(headerSize)
	contentOff := uint32(0)
	var rawBytes int64

	for _, in := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, packed, err := packInput(in, version, contentOff)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", in.Path, err)
		}

		if _, err := out.Seek(indexOff, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek to index record: %w", err)
		}

		recordSize, err := writeFileEntry(out, entry, in.Times)
		if err != nil {
			return nil, fmt.Errorf("write index record %s: %w", in.Path, err)
		}

		indexOff += int64(recordSize)
		if _, err := out.Seek(contentStart+int64(contentOff), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek to content: %w", err)
		}

		if _, err := out.Write(packed); err != nil {
			return nil, fmt.Errorf("write content %s: %w", in.Path, err)
		}

		contentOff += entry.RawSize
		rawBytes += int64(entry.UncompressedSize)

		if opts.OnEntryDone != nil {
			opts.OnEntryDone(entry)
		}
	}

	if indexOff != contentStart {
		return nil, fmt.Errorf("%w: index region ends at %#x, content starts at %#x",
			ErrInternal, indexOff, contentStart)
	}

	header := HeaderInfo{
		ContentVersion: version,
		FileCount:      uint32(len(plan)), //nolint:gosec // bounded by indexSize check above
		IndexSize:      uint32(indexSize), //nolint:gosec // checked above
		ContentSize:    contentOff,
	}

	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to header: %w", err)
	}

	if _, err := out.Write(encodeHeader(header, opts.Clock())); err != nil {
		return nil, fmt.Errorf("rewrite header: %w", err)
	}

	return &PackResult{
		Header:         header,
		WrittenEntries: len(plan),
		RawBytes:       rawBytes,
		Duration:       time.Since(startedAt),
	}, nil
}

// PackFile writes a container to outPath, creating or truncating the file.
func PackFile(ctx context.Context, outPath string, inputs []Input, version uint32, opts PackOptions) (*PackResult, error) {
	f, err := os.OpenFile(outPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create pack file: %w", err)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	res, err := Pack(ctx, f, inputs, version, opts)
	if err != nil {
		return nil, err
	}

	if err := f.Sync(); err != nil {
		return nil, fmt.Errorf("sync pack file: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close pack file: %w", err)
	}
	f = nil

	return res, nil
}

// packInput reads one source stream and runs the content transform pipeline.
func packInput(in Input, version uint32, contentOff uint32) (FileEntry, []byte, error) {
	if in.Open == nil {
		return FileEntry{}, nil, fmt.Errorf("input %s: Open is nil", in.Path)
	}

	rc, err := in.Open()
	if err != nil {
		return FileEntry{}, nil, fmt.Errorf("open input: %w", err)
	}

	raw, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return FileEntry{}, nil, fmt.Errorf("read input: %w", readErr)
	}
	if closeErr != nil {
		return FileEntry{}, nil, fmt.Errorf("close input: %w", closeErr)
	}

	if int64(len(raw)) > math.MaxUint32 {
		return FileEntry{}, nil, ErrSizeOverflow
	}

	packed, err := packEntryContent(raw, version)
	if err != nil {
		return FileEntry{}, nil, err
	}

	rawSize := int64(len(packed))
	if rawSize > math.MaxUint32-int64(contentOff) {
		return FileEntry{}, nil, fmt.Errorf("%w: content region past 4 GiB", ErrSizeOverflow)
	}

	return FileEntry{
		Name:             in.Path,
		Version:          version,
		Offset:           contentOff,
		RawSize:          uint32(rawSize),  //nolint:gosec // checked above
		UncompressedSize: uint32(len(raw)), //nolint:gosec // checked above
	}, packed, nil
}

// ParseVersionKey parses the decimal version key supplied at pack time.
func ParseVersionKey(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return uint32(v), nil
}
