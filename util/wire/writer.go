// Package wire implements the fixed-layout binary framing shared by the
// identity-directory and storage endpoints.
//
// Every variable-length field is prefixed by its length as an unsigned
// 32-bit big-endian integer. There are no type tags: readers must know the
// schema of the endpoint they decode. The layout is pinned to Version and
// must not be reordered without bumping it.
package wire

import (
	"encoding/binary"
	"math"
)

// Version of the framing. Any field reordering or width change needs a bump.
const Version = 1

type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteArray writes a length-prefixed byte array.
func (w *Writer) WriteArray(b []byte) {
	if uint64(len(b)) > math.MaxUint32 {
		panic("wire: array exceeds uint32 length")
	}
	w.WriteUint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteString writes a length-prefixed utf8 string.
func (w *Writer) WriteString(s string) {
	w.WriteArray([]byte(s))
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Bytes() []byte {
	return w.buf
}
