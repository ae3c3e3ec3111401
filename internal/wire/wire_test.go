package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func mustDecode(t *testing.T, b []byte) (int, uint, []byte) {
	t.Helper()
	dim, prec, p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return dim, prec, p
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		dim     int
		prec    uint
		payload []byte
	}{
		{2, 53, nil},
		{200, 636, []byte("table bytes")},
		{3, 1 << 20, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := Encode(tc.dim, tc.prec, tc.payload)
		dim, prec, p := mustDecode(t, enc)
		if dim != tc.dim || prec != tc.prec {
			t.Fatalf("identity mismatch: got (%d,%d) want (%d,%d)", dim, prec, tc.dim, tc.prec)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(2, 212, []byte("x"))
	enc = append(enc, 0xDE, 0xAD)
	if _, _, _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(5, 300, []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// plen beyond buffer (offset 13: 4 magic + 1 ver + 4 dim + 4 prec)
	tooLong := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooLong[13:17], uint32(len("abc")+1))
	if _, _, _, err := Decode(tooLong); err == nil {
		t.Fatalf("expected error on plen beyond buffer")
	}

	// truncated buffer
	trunc := enc[:len(enc)-1]
	if _, _, _, err := Decode(trunc); err == nil {
		t.Fatalf("expected error on truncated buffer")
	}
}
