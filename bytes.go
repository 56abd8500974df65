package codec

import "unicode/utf8"

// Variable-width byte content: a 4-byte length and the raw bytes when nested,
// the raw bytes alone at top level.

// Bytes is a mutable byte string.
type Bytes []byte

// String is a UTF-8 string.
type String string

// H256 is a fixed 32-byte array, e.g. an address or a hash.
type H256 [32]byte

var (
	_ Codec = (*Bytes)(nil)
	_ Codec = (*String)(nil)
	_ Codec = (*H256)(nil)
)

func (v Bytes) EncodeNested(w *Writer, h ErrorHandler) error  { return w.WriteBytes(v, h) }
func (v Bytes) EncodeTop(out TopOutput, h ErrorHandler) error { return setTop(out, v, h) }

func (v *Bytes) DecodeNested(r *Reader, h ErrorHandler) error {
	b, err := r.ReadBytes(h)
	if err != nil {
		return err
	}
	*v = b
	return nil
}

func (v *Bytes) DecodeTop(in []byte, _ ErrorHandler) error {
	*v = append(Bytes(nil), in...)
	return nil
}

func (v String) EncodeNested(w *Writer, h ErrorHandler) error {
	if err := w.WriteLength(len(v), h); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	return w.WriteRaw([]byte(v), h)
}

func (v String) EncodeTop(out TopOutput, h ErrorHandler) error {
	return setTop(out, []byte(v), h)
}

func (v *String) DecodeNested(r *Reader, h ErrorHandler) error {
	n, err := r.ReadLength(h)
	if err != nil {
		return err
	}
	b, err := r.ReadSlice(n, h)
	if err != nil {
		return err
	}
	return v.set(b, h)
}

func (v *String) DecodeTop(in []byte, h ErrorHandler) error { return v.set(in, h) }

func (v *String) set(b []byte, h ErrorHandler) error {
	if !utf8.Valid(b) {
		return h.HandleError(invalidf("string is not valid UTF-8"))
	}
	*v = String(b)
	return nil
}

func (v H256) EncodeNested(w *Writer, h ErrorHandler) error  { return w.WriteRaw(v[:], h) }
func (v H256) EncodeTop(out TopOutput, h ErrorHandler) error { return setTop(out, v[:], h) }

func (v *H256) DecodeNested(r *Reader, h ErrorHandler) error {
	b, err := r.ReadSlice(len(v), h)
	if err != nil {
		return err
	}
	copy(v[:], b)
	return nil
}

func (v *H256) DecodeTop(in []byte, h ErrorHandler) error {
	return DecodeTopFromNested(v, in, h)
}

// IsZero reports whether every byte is zero.
func (v H256) IsZero() bool { return v == H256{} }

// BoxedBytes is an immutable owned byte buffer. It is created by copying and
// never exposes its storage for writing.
type BoxedBytes struct {
	b []byte
}

var _ Codec = (*BoxedBytes)(nil)

// EmptyBoxedBytes returns a zero-length buffer.
func EmptyBoxedBytes() BoxedBytes { return BoxedBytes{} }

// NewBoxedBytes copies p into a new buffer.
func NewBoxedBytes(p []byte) BoxedBytes {
	if len(p) == 0 {
		return BoxedBytes{}
	}
	return BoxedBytes{b: append([]byte(nil), p...)}
}

// Len returns the number of bytes held.
func (v BoxedBytes) Len() int { return len(v.b) }

// IsEmpty reports whether the buffer holds no bytes.
func (v BoxedBytes) IsEmpty() bool { return len(v.b) == 0 }

// Bytes returns a read-only view of the contents. Callers must not modify it.
func (v BoxedBytes) Bytes() []byte { return v.b[:len(v.b):len(v.b)] }

// String returns the contents as a Go string.
func (v BoxedBytes) String() string { return string(v.b) }

func (v BoxedBytes) EncodeNested(w *Writer, h ErrorHandler) error  { return w.WriteBytes(v.b, h) }
func (v BoxedBytes) EncodeTop(out TopOutput, h ErrorHandler) error { return setTop(out, v.b, h) }

func (v *BoxedBytes) DecodeNested(r *Reader, h ErrorHandler) error {
	n, err := r.ReadLength(h)
	if err != nil {
		return err
	}
	b, err := r.ReadSlice(n, h)
	if err != nil {
		return err
	}
	*v = NewBoxedBytes(b)
	return nil
}

// DecodeTop takes the whole input; the enclosing buffer supplies the length.
func (v *BoxedBytes) DecodeTop(in []byte, _ ErrorHandler) error {
	*v = NewBoxedBytes(in)
	return nil
}
