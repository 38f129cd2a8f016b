package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrShortBuffer   = errors.New("wire: short buffer")
	ErrTooLarge      = errors.New("wire: field exceeds limit")
	ErrTrailingBytes = errors.New("wire: trailing bytes")
	ErrInvalidBool   = errors.New("wire: invalid bool")
)

// Reader decodes a buffer produced by Writer. It never reads past the end
// of the underlying slice.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrShortBuffer
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadBool() (bool, error) {
	if r.Remaining() < 1 {
		return false, ErrShortBuffer
	}
	b := r.buf[r.pos]
	r.pos++
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, ErrInvalidBool
}

// ReadFixed returns a copy of the next n bytes.
func (r *Reader) ReadFixed(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrShortBuffer
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// ReadArray reads a length-prefixed array of at most max bytes.
func (r *Reader) ReadArray(max int) ([]byte, error) {
	l, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(l) > uint64(max) {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, l, max)
	}
	return r.ReadFixed(int(l))
}

func (r *Reader) ReadString(max int) (string, error) {
	b, err := r.ReadArray(max)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadCount reads an element count and checks that the remaining buffer
// can hold at least count elements of minElemSize bytes each.
func (r *Reader) ReadCount(minElemSize int) (int, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if minElemSize > 0 && uint64(n)*uint64(minElemSize) > uint64(r.Remaining()) {
		return 0, fmt.Errorf("%w: count %d", ErrShortBuffer, n)
	}
	return int(n), nil
}

// Done reports an error if unread bytes are left.
func (r *Reader) Done() error {
	if r.Remaining() != 0 {
		return fmt.Errorf("%w: %d", ErrTrailingBytes, r.Remaining())
	}
	return nil
}
