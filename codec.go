// Package codec implements the binary value format used at the storage,
// call-argument and return-value boundaries of a metered contract runtime.
//
// Every value has two encodings. The nested encoding is self-delimiting and
// is used when the value is embedded in a larger stream. The top encoding is
// used when the value occupies an entire buffer, so "end of value" is "end of
// buffer"; numeric types use their shortest representation there because
// persisted bytes cost fees.
//
// All operations take an ErrorHandler. ResultHandler returns errors the
// ordinary way; ExitHandler hands the error to a function that never returns
// and is used where failure must terminate the current unit of execution.
package codec

// NestedEncoder writes a self-delimiting representation of a value.
type NestedEncoder interface {
	EncodeNested(w *Writer, h ErrorHandler) error
}

// NestedDecoder reads exactly the bytes of one value and advances r past them.
type NestedDecoder interface {
	DecodeNested(r *Reader, h ErrorHandler) error
}

// TopEncoder writes a value that occupies a whole buffer.
// Implementations call out.SetBytes exactly once.
type TopEncoder interface {
	EncodeTop(out TopOutput, h ErrorHandler) error
}

// TopDecoder decodes a value from a whole buffer, rejecting trailing bytes.
type TopDecoder interface {
	DecodeTop(in []byte, h ErrorHandler) error
}

// Encoder aggregates both encoding forms.
type Encoder interface {
	NestedEncoder
	TopEncoder
}

// Decoder aggregates both decoding forms.
type Decoder interface {
	NestedDecoder
	TopDecoder
}

// Codec is a complete encoder/decoder. Decoding methods have pointer
// receivers, so it is normally satisfied by *T.
type Codec interface {
	Encoder
	Decoder
}

// DecoderPtr constrains PT to be *T with decoding methods. It lets generic
// functions allocate a T and decode into it without reflection.
type DecoderPtr[T any] interface {
	*T
	Decoder
}

// CodecPtr is DecoderPtr for element types that must also encode.
type CodecPtr[T any] interface {
	*T
	Codec
}

// TopOutput receives the complete top encoding of a value.
// SetBytes must copy p if it needs it after returning.
type TopOutput interface {
	SetBytes(p []byte) error
}

// TopBuffer is an in-memory TopOutput.
type TopBuffer struct {
	B []byte
}

var _ TopOutput = (*TopBuffer)(nil)

// SetBytes replaces the buffer contents with a copy of p.
func (b *TopBuffer) SetBytes(p []byte) error {
	b.B = append(b.B[:0], p...)
	return nil
}

// Bytes returns the encoded bytes.
func (b *TopBuffer) Bytes() []byte { return b.B }

// Len returns the number of encoded bytes.
func (b *TopBuffer) Len() int { return len(b.B) }
