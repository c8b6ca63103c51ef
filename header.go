// SPDX-License-Identifier: MIT

package mabipack

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Header layout offsets. The preamble is exactly headerSize bytes:
//
//	[0x000] magic "PACK"
//	[0x004] format constant 0x102
//	[0x008] content version
//	[0x00c] file count
//	[0x010] two FILETIME stamps (non-semantic)
//	[0x020] literal "data\" tag, zero padding to 0x200
//	[0x200] file count again (redundancy check)
//	[0x204] index size
//	[0x208] reserved zero
//	[0x20c] content size
//	[0x210] 16 zero bytes
const (
	headerTimeOff  = 0x10
	headerTagOff   = 0x20
	headerTailOff  = 0x200
	headerDataTag  = `data\`
	windowsEpoch   = 116_444_736_000_000_000
	filetimePerMil = 10_000
)

// filetimeFromTime converts t to a Windows-epoch FILETIME value with
// millisecond precision. The zero time maps to a zero stamp.
func filetimeFromTime(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}

	millis := t.UnixMilli()
	if millis < 0 {
		return 0
	}

	return uint64(millis)*filetimePerMil + windowsEpoch
}

// encodeHeader serializes the container preamble. The timestamp pair carries
// the pack wall-clock time; readers skip it entirely.
func encodeHeader(info HeaderInfo, stamp time.Time) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], headerMagic)
	binary.LittleEndian.PutUint32(buf[4:8], headerFormatVersion)
	binary.LittleEndian.PutUint32(buf[8:12], info.ContentVersion)
	binary.LittleEndian.PutUint32(buf[12:16], info.FileCount)

	ft := filetimeFromTime(stamp)
	binary.LittleEndian.PutUint64(buf[headerTimeOff:], ft)
	binary.LittleEndian.PutUint64(buf[headerTimeOff+8:], ft)

	copy(buf[headerTagOff:], headerDataTag)

	binary.LittleEndian.PutUint32(buf[headerTailOff:], info.FileCount)
	binary.LittleEndian.PutUint32(buf[headerTailOff+4:], info.IndexSize)
	// buf[0x208:0x20c] stays zero (reserved).
	binary.LittleEndian.PutUint32(buf[headerTailOff+12:], info.ContentSize)

	return buf
}

// decodeHeader validates the preamble constants and the doubled file count
// before any index parsing happens.
func decodeHeader(buf []byte) (HeaderInfo, error) {
	if len(buf) < headerSize {
		return HeaderInfo{}, fmt.Errorf("%w: short header (%d bytes)", ErrBadFormat, len(buf))
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != headerMagic {
		return HeaderInfo{}, fmt.Errorf("%w: bad magic", ErrBadFormat)
	}
	if binary.LittleEndian.Uint32(buf[4:8]) != headerFormatVersion {
		return HeaderInfo{}, fmt.Errorf("%w: unsupported format version", ErrBadFormat)
	}

	info := HeaderInfo{
		ContentVersion: binary.LittleEndian.Uint32(buf[8:12]),
		FileCount:      binary.LittleEndian.Uint32(buf[12:16]),
		IndexSize:      binary.LittleEndian.Uint32(buf[headerTailOff+4:]),
		ContentSize:    binary.LittleEndian.Uint32(buf[headerTailOff+12:]),
	}

	if binary.LittleEndian.Uint32(buf[headerTailOff:]) != info.FileCount {
		return HeaderInfo{}, fmt.Errorf("%w: file count fields disagree", ErrBadFormat)
	}

	return info, nil
}
