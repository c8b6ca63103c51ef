// SPDX-License-Identifier: MIT

package mabipack

import "errors"

// Sentinel errors for pack operations. Use errors.Is in callers.
var (
	// ErrBadFormat means the container violates the fixed binary layout:
	// wrong magic or format constant, mismatched redundant file count, or a
	// malformed string block in the index.
	ErrBadFormat = errors.New("malformed pack file")
	// ErrCorruptedEntry means entry content failed de-obfuscation,
	// decompression, or the decompressed-size check.
	ErrCorruptedEntry = errors.New("corrupted entry content")
	// ErrInvalidVersion means the version key is not an unsigned decimal number.
	ErrInvalidVersion = errors.New("invalid version key")
	// ErrInvalidFilter means an extract filter is not a valid regular expression.
	ErrInvalidFilter = errors.New("invalid filter expression")
	// ErrInvalidEntryPath means an input entry path is empty or escapes the
	// archive namespace after normalization.
	ErrInvalidEntryPath = errors.New("invalid entry path")
	// ErrEntryNotFound means the named entry is not present in the index.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNameTooLong means a string block declares an implausibly large name.
	ErrNameTooLong = errors.New("entry name exceeds maximum length")
	// ErrNilReader means the reader is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrNilWriter means the writer is nil.
	ErrNilWriter = errors.New("writer is nil")
	// ErrClosed means the reader was already closed.
	ErrClosed = errors.New("reader already closed")
	// ErrSizeOverflow means a size or offset exceeds the uint32 container limit.
	ErrSizeOverflow = errors.New("size exceeds uint32 container limit")
	// ErrInvalidRules means one or more pack input selection rules are invalid.
	ErrInvalidRules = errors.New("invalid input selection rules")
	// ErrInternal means a container-assembly invariant was violated; it
	// indicates a bug, not bad input.
	ErrInternal = errors.New("internal invariant violation")
)
