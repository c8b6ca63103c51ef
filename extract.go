// SPDX-License-Identifier: MIT

package mabipack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Extract writes selected entries to dstDir, creating directories as needed.
// Entries are processed sequentially in index order; the first failure aborts
// the whole operation with the entry name attached.
func (r *Reader) Extract(ctx context.Context, dstDir string, opts ExtractOptions) error {
	if r == nil || r.ra == nil {
		return ErrNilReader
	}

	if err := r.checkOpen(); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	filters, err := compileFilters(opts.Filters)
	if err != nil {
		return err
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, entry := range r.entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !matchAnyFilter(filters, entry.Name) {
			continue
		}

		outPath, err := r.extractEntry(dstRootAbs, entry)
		if err != nil {
			return err
		}

		if opts.OnEntryDone != nil {
			opts.OnEntryDone(entry, outPath)
		}
	}

	return nil
}

// extractEntry writes one entry under the destination root.
func (r *Reader) extractEntry(dstRootAbs string, entry FileEntry) (string, error) {
	relPath, err := normalizeExtractEntryPath(entry.Name)
	if err != nil {
		return "", fmt.Errorf("entry %s: %w", entry.Name, err)
	}

	raw, err := r.readEntryContent(entry)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(dstRootAbs, filepath.FromSlash(relPath))
	if dir := filepath.Dir(outPath); dir != dstRootAbs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("entry %s: create output directory: %w", entry.Name, err)
		}
	}

	if err := os.WriteFile(outPath, raw, 0o600); err != nil {
		return "", fmt.Errorf("entry %s: write output: %w", entry.Name, err)
	}

	return outPath, nil
}
