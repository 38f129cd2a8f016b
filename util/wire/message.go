package wire

import "fmt"

// Message is a payload with a fixed field layout.
type Message interface {
	MarshalWire(w *Writer)
	UnmarshalWire(r *Reader) error
}

func Marshal(m Message) []byte {
	w := NewWriter()
	m.MarshalWire(w)
	return w.Bytes()
}

// Unmarshal decodes b into m and fails on trailing bytes.
func Unmarshal(b []byte, m Message) error {
	r := NewReader(b)
	if err := m.UnmarshalWire(r); err != nil {
		return fmt.Errorf("unmarshal %T: %w", m, err)
	}
	if err := r.Done(); err != nil {
		return fmt.Errorf("unmarshal %T: %w", m, err)
	}
	return nil
}

// ReadArrays reads u32 count followed by that many arrays.
func (r *Reader) ReadArrays(maxCount, maxSize int) ([][]byte, error) {
	n, err := r.ReadCount(4)
	if err != nil {
		return nil, err
	}
	if n > maxCount {
		return nil, fmt.Errorf("%w: %d items", ErrTooLarge, n)
	}
	res := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		item, err := r.ReadArray(maxSize)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// WriteArrays writes u32 count followed by the arrays.
func (w *Writer) WriteArrays(items [][]byte) {
	w.WriteUint32(uint32(len(items)))
	for _, item := range items {
		w.WriteArray(item)
	}
}
