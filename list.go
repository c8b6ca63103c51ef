// SPDX-License-Identifier: MIT

package mabipack

import (
	"fmt"
	"io"
)

// List writes one line per entry to w: the entry name, optionally prefixed
// by its version.
func List(w io.Writer, entries []FileEntry, opts ListOptions) error {
	if w == nil {
		return ErrNilWriter
	}

	for _, entry := range entries {
		var err error
		if opts.WithVersion {
			_, err = fmt.Fprintf(w, "%d %s\n", entry.Version, entry.Name)
		} else {
			_, err = fmt.Fprintln(w, entry.Name)
		}

		if err != nil {
			return fmt.Errorf("write listing: %w", err)
		}
	}

	return nil
}
