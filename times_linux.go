// SPDX-License-Identifier: MIT

//go:build linux

package mabipack

import (
	"os"
	"syscall"
	"time"
)

// fileTimesFromInfo extracts access and change times from the stat record.
// Linux does not expose a creation time through stat, so the inode change
// time stands in for it.
func fileTimesFromInfo(fi os.FileInfo) FileTimes {
	mod := fi.ModTime()
	times := FileTimes{Created: mod, Accessed: mod, Modified: mod}

	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return times
	}

	times.Accessed = time.Unix(st.Atim.Unix())
	times.Created = time.Unix(st.Ctim.Unix())

	return times
}
