// SPDX-License-Identifier: MIT

package mabipack

// ReadHeader opens a pack file and returns the validated preamble without
// keeping a reader around.
func ReadHeader(path string) (HeaderInfo, error) {
	r, err := Open(path)
	if err != nil {
		return HeaderInfo{}, err
	}
	defer func() { _ = r.Close() }()

	return r.Header(), nil
}

// ListEntries opens a pack file and returns its index records without any
// content reads.
func ListEntries(path string) ([]FileEntry, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Entries(), nil
}
