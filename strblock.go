// SPDX-License-Identifier: MIT

package mabipack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Entry names are stored in length-classed blocks: one class byte, an
// explicit 4-byte size for class 5 only, then the NUL-terminated name padded
// with zeros to the block size. The class is a strict function of the name
// length; callers cannot pick a larger class.

// stringBlockSize returns the total block size and class byte for a name of
// nameLen UTF-8 bytes.
func stringBlockSize(nameLen int) (int, byte) {
	switch {
	case nameLen <= 14:
		return 16, 0
	case nameLen <= 30:
		return 32, 1
	case nameLen <= 46:
		return 48, 2
	case nameLen <= 62:
		return 64, 3
	case nameLen <= 94:
		return 96, 4
	default:
		// Rounding up from nameLen+21 always leaves at least one NUL of
		// padding after the 5-byte class prefix, so decode can rely on a
		// terminator being present.
		return (nameLen + 21) / 16 * 16, 5
	}
}

// writeStringBlock encodes name into w and returns the block size.
// Forward slashes are rewritten to backslashes, the on-disk separator form.
func writeStringBlock(w io.Writer, name string) (int, error) {
	encoded := strings.ReplaceAll(name, "/", `\`)
	blockSize, class := stringBlockSize(len(encoded))
	if blockSize-5 > maxStringBlock {
		return 0, fmt.Errorf("%w: %d-byte name", ErrNameTooLong, len(encoded))
	}

	block := make([]byte, blockSize)
	block[0] = class
	nameOff := 1
	if class == 5 {
		binary.LittleEndian.PutUint32(block[1:5], uint32(blockSize-5)) //nolint:gosec // bounded by maxStringBlock above
		nameOff = 5
	}

	copy(block[nameOff:], encoded)
	if _, err := w.Write(block); err != nil {
		return 0, fmt.Errorf("write name block: %w", err)
	}

	return blockSize, nil
}

// readStringBlock decodes one name block from r and returns the name in
// slash-separated form together with the number of bytes consumed.
func readStringBlock(r io.Reader) (string, int, error) {
	var class [1]byte
	if _, err := io.ReadFull(r, class[:]); err != nil {
		return "", 0, fmt.Errorf("read name class: %w", err)
	}

	consumed := 1
	var payloadLen int
	switch c := class[0]; {
	case c <= 3:
		payloadLen = (int(c)+1)*16 - 1
	case c == 4:
		payloadLen = 6*16 - 1
	case c == 5:
		var sizeField [4]byte
		if _, err := io.ReadFull(r, sizeField[:]); err != nil {
			return "", 0, fmt.Errorf("read name size: %w", err)
		}

		consumed += 4
		payloadLen = int(binary.LittleEndian.Uint32(sizeField[:]))
		if payloadLen > maxStringBlock {
			return "", 0, fmt.Errorf("%w: name block of %d bytes", ErrNameTooLong, payloadLen)
		}
	default:
		return "", 0, fmt.Errorf("%w: unknown name class %d", ErrBadFormat, c)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", 0, fmt.Errorf("read name block: %w", err)
	}

	consumed += payloadLen
	nul := bytes.IndexByte(payload, 0)
	if nul < 0 {
		return "", 0, fmt.Errorf("%w: name block without terminator", ErrBadFormat)
	}

	name := payload[:nul]
	if !utf8.Valid(name) {
		return "", 0, fmt.Errorf("%w: name is not valid UTF-8", ErrBadFormat)
	}

	return strings.ReplaceAll(string(name), `\`, "/"), consumed, nil
}
