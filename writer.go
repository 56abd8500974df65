package codec

import (
	"io"
	"math"
)

// Writer is the byte sink for nested encoding. It tracks the number of bytes
// written and the first error; after an error every write is a no-op that
// reports the same error through the handler.
type Writer struct {
	w     io.Writer
	count int64
	err   error // first error encountered.
}

var _ io.Writer = (*Writer)(nil)

// NewWriter wraps w. It panics on a nil writer.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(ErrNilIO)
	}
	if nested, ok := w.(*Writer); ok {
		return nested
	}
	return &Writer{w: w}
}

// Write implements io.Writer. Failures are reported as ErrSinkRejected.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	if n < 0 || n > len(p) {
		n, err = 0, io.ErrShortWrite
	}
	w.count += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.setError(err)
	return n, w.err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = sinkError(err)
	}
}

// WriteRaw writes p with no length prefix.
func (w *Writer) WriteRaw(p []byte, h ErrorHandler) error {
	if len(p) == 0 && w.err == nil {
		return nil
	}
	if _, err := w.Write(p); err != nil {
		return h.HandleError(err)
	}
	return nil
}

// WriteLength writes n as the 4-byte length prefix of variable-width content.
func (w *Writer) WriteLength(n int, h ErrorHandler) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return h.HandleError(ErrValueTooLarge)
	}
	return w.WriteUint32(uint32(n), h)
}

// WriteBytes writes p as a length-prefixed byte string.
func (w *Writer) WriteBytes(p []byte, h ErrorHandler) error {
	if err := w.WriteLength(len(p), h); err != nil {
		return err
	}
	return w.WriteRaw(p, h)
}

// --- Primitive Write Operations ---

func (w *Writer) WriteUint8(v uint8, h ErrorHandler) error {
	buf := [1]byte{v}
	return w.WriteRaw(buf[:], h)
}

func (w *Writer) WriteUint16(v uint16, h ErrorHandler) error {
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	return w.WriteRaw(buf[:], h)
}

func (w *Writer) WriteUint32(v uint32, h ErrorHandler) error {
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	return w.WriteRaw(buf[:], h)
}

func (w *Writer) WriteUint64(v uint64, h ErrorHandler) error {
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	return w.WriteRaw(buf[:], h)
}

func (w *Writer) WriteBool(v bool, h ErrorHandler) error {
	if v {
		return w.WriteUint8(1, h)
	}
	return w.WriteUint8(0, h)
}
