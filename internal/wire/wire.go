// Package wire frames persisted term tables with a magic/version header and
// the (dimension, precision) identity of the table. The header lets a reader
// reject foreign blobs, tables written under an incompatible schema, and
// tables that were stored under the wrong key, before the codec ever runs.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("fresnelvol: corrupt table envelope")
	magic4     = [...]byte{'F', 'V', 'T', 'B'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Layout: magic(4) | ver(1) | dim(u32 be) | prec(u32 be) | plen(u32 be) | payload(plen)
func Encode(dim int, prec uint, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4 + 4 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(dim))
	buf.Write(u4[:])
	binary.BigEndian.PutUint32(u4[:], uint32(prec))
	buf.Write(u4[:])
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func Decode(b []byte) (dim int, prec uint, payload []byte, err error) {
	const hdr = 4 + 1 + 4 + 4 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return 0, 0, nil, ErrCorrupt
	}

	off := 5
	dim = int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	prec = uint(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	plen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4

	if plen < 0 || plen != len(b)-off { // trailing bytes are corruption too
		return 0, 0, nil, ErrCorrupt
	}
	return dim, prec, b[off : off+plen], nil
}
