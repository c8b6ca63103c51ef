// SPDX-License-Identifier: MIT

package mabipack

import (
	"fmt"
	"os"
)

// statFileTimes reads created/accessed/modified stamps for one source file.
func statFileTimes(path string) (FileTimes, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, fmt.Errorf("stat %s: %w", path, err)
	}

	return fileTimesFromInfo(fi), nil
}
