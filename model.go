// SPDX-License-Identifier: MIT

package mabipack

import (
	"io"
	"time"

	"github.com/woozymasta/pathrules"
)

// Internal binary layout constants.
const (
	// headerSize is the fixed container preamble size in bytes.
	headerSize = 0x220
	// headerMagic is the little-endian "PACK" tag at offset 0.
	headerMagic = 0x4b434150
	// headerFormatVersion is the only supported container layout revision.
	headerFormatVersion = 0x102
	// entryTailSize is the fixed index record size after the name block.
	entryTailSize = 0x40
	// maxStringBlock bounds explicit class-5 name blocks during decode.
	maxStringBlock = 1 << 16
)

// HeaderInfo describes the fixed-size container preamble. It is read once at
// open and written twice during pack: first as a zero-filled placeholder,
// then with final sizes once every entry is known.
type HeaderInfo struct {
	// ContentVersion is the caller-supplied version key for the whole pack.
	ContentVersion uint32 `json:"content_version" yaml:"content_version"`
	// FileCount is the number of index records.
	FileCount uint32 `json:"file_count" yaml:"file_count"`
	// IndexSize is the index region size in bytes.
	IndexSize uint32 `json:"index_size" yaml:"index_size"`
	// ContentSize is the content region size in bytes.
	ContentSize uint32 `json:"content_size" yaml:"content_size"`
}

// FileEntry describes one index record. Entry names use forward slashes in
// memory and backslashes on the wire.
type FileEntry struct {
	// Name is the entry path relative to the container root.
	Name string `json:"name" yaml:"name"`
	// Version mirrors the container version key and seeds the keystream.
	Version uint32 `json:"version" yaml:"version"`
	// Offset is the byte offset into the content region, not the file.
	Offset uint32 `json:"offset" yaml:"offset"`
	// RawSize is the stored (compressed and obfuscated) payload size.
	RawSize uint32 `json:"raw_size" yaml:"raw_size"`
	// UncompressedSize is the payload size after decompression and is
	// checked against the decoded length during extraction.
	UncompressedSize uint32 `json:"uncompressed_size" yaml:"uncompressed_size"`
}

// FileTimes carries filesystem timestamps for one pack input. Creation time
// falls back to the modification time on platforms that do not record it.
type FileTimes struct {
	Created  time.Time `json:"created" yaml:"created"`
	Accessed time.Time `json:"accessed" yaml:"accessed"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

// Input describes one source stream to be packed into a container entry.
type Input struct {
	// Open returns the raw source stream for this entry.
	Open func() (io.ReadCloser, error) `json:"-" yaml:"-"`
	// Path is the destination path inside the container, slash-separated.
	Path string `json:"path" yaml:"path"`
	// Times supplies index record timestamps; the zero value writes zero stamps.
	Times FileTimes `json:"times,omitzero" yaml:"times,omitzero"`
}

// PackOptions configures pack behavior.
type PackOptions struct {
	// OnEntryDone is called after one entry is fully written to the container.
	OnEntryDone func(entry FileEntry) `json:"-" yaml:"-"`
	// Clock supplies the header timestamp pair; defaults to time.Now.
	Clock func() time.Time `json:"-" yaml:"-"`
}

// PackResult contains pack output statistics.
type PackResult struct {
	// Header is the finalized container preamble as written at offset 0.
	Header HeaderInfo `json:"header" yaml:"header"`
	// WrittenEntries is the number of entries written to the container.
	WrittenEntries int `json:"written_entries" yaml:"written_entries"`
	// RawBytes is the total uncompressed input size.
	RawBytes int64 `json:"raw_bytes" yaml:"raw_bytes"`
	// Duration is the end-to-end pack core duration.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// WalkOptions configures input collection for directory-based packing.
type WalkOptions struct {
	// Rules select which walked files become pack inputs. Empty means all.
	Rules []pathrules.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// MatcherOptions control rule matching behavior.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
}

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is fully written to disk.
	OnEntryDone func(entry FileEntry, outputPath string) `json:"-" yaml:"-"`
	// Filters are regular expressions matched against entry names; an entry
	// is extracted when any filter finds a match. Empty means all entries.
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// ListOptions configures the entry listing report.
type ListOptions struct {
	// WithVersion prefixes each line with the entry version.
	WithVersion bool `json:"with_version,omitempty" yaml:"with_version,omitempty"`
}

// applyDefaults fills zero-valued pack options with defaults.
func (opts *PackOptions) applyDefaults() {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
}

// applyDefaults fills zero-valued walk options with defaults.
func (opts *WalkOptions) applyDefaults() {
	if opts.MatcherOptions == (pathrules.MatcherOptions{}) {
		opts.MatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.MatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.MatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}
