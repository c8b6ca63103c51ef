// SPDX-License-Identifier: MIT

//go:build !linux

package mabipack

import "os"

// fileTimesFromInfo reuses the modification time for all three stamps where
// the platform offers nothing richer through os.FileInfo.
func fileTimesFromInfo(fi os.FileInfo) FileTimes {
	mod := fi.ModTime()
	return FileTimes{Created: mod, Accessed: mod, Modified: mod}
}
