package codec

import "io"

// BytesWriter is an io.Writer over a pre-allocated byte slice. It never grows
// the slice, so its capacity acts as a write quota: a write that does not fit
// is rejected whole with io.ErrShortWrite and nothing is copied.
type BytesWriter struct {
	B []byte // destination slice
	N int    // current write position
}

// NewBytesWriter creates a BytesWriter whose quota is cap(p).
func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p[:cap(p)]}
}

// Write implements the io.Writer interface.
func (w *BytesWriter) Write(p []byte) (int, error) {
	if len(p) > w.Available() {
		return 0, io.ErrShortWrite
	}
	n := copy(w.B[w.N:], p)
	w.N += n
	return n, nil
}

// WriteByte implements the io.ByteWriter interface for efficiency.
func (w *BytesWriter) WriteByte(c byte) error {
	if w.N >= len(w.B) {
		return io.ErrShortWrite
	}
	w.B[w.N] = c
	w.N++
	return nil
}

// Reset allows the underlying byte slice to be reused.
func (w *BytesWriter) Reset() { w.N = 0 }

// Len returns the number of bytes written.
func (w *BytesWriter) Len() int { return w.N }

// Size returns the capacity of the underlying byte slice.
func (w *BytesWriter) Size() int { return len(w.B) }

// Available returns the number of bytes available for writing.
func (w *BytesWriter) Available() int { return len(w.B) - w.N }

// Bytes returns a slice view of the written data.
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }

// SetBytes makes BytesWriter usable as a TopOutput with the same quota.
// A rejected p leaves the previous contents in place.
func (w *BytesWriter) SetBytes(p []byte) error {
	if len(p) > len(w.B) {
		return io.ErrShortWrite
	}
	w.N = copy(w.B, p)
	return nil
}
