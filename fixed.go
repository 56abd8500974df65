package codec

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in `binary.Size` on every call.
// The codec is otherwise free of shared state; this map is concurrent-safe.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed provides a Codec for any struct `Payload` composed of fixed-size
// fields (integers, bools, arrays of them, nested such structs). Its nested
// encoding is the big-endian concatenation of its fields in declaration
// order, which is exactly what encoding each field with its own nested codec
// would produce.
//
// Constraint: `Payload` MUST NOT contain slices, maps, strings or pointers,
// as this will cause `binary.Size` to fail. Platform-sized int/uint fields
// are rejected for the same reason.
type Fixed[Payload any] struct {
	Payload Payload
}

// Statically assert that Fixed implements Codec.
var _ Codec = (*Fixed[struct{}])(nil)

// Size returns the fixed size of the payload in bytes, or -1 if the payload
// is not a fixed-size type. The result is cached per type.
func (c *Fixed[Payload]) Size() int {
	payloadType := reflect.TypeOf((*Payload)(nil)).Elem()

	// Attempt to load from the concurrent-safe cache first for performance.
	if size, ok := sizeCache.Load(payloadType); ok {
		return size
	}

	// If not cached, perform the expensive reflection-based calculation.
	size := binary.Size(&c.Payload)

	// Store the result for subsequent calls.
	sizeCache.Store(payloadType, size)
	return size
}

func (c Fixed[Payload]) EncodeNested(w *Writer, h ErrorHandler) error {
	size := c.Size()
	if size < 0 {
		return h.HandleError(invalidf("%T is not a fixed-size type", c.Payload))
	}
	buf := make([]byte, size)
	if _, err := binary.Encode(buf, Order, &c.Payload); err != nil {
		return h.HandleError(invalidf("%v", err))
	}
	return w.WriteRaw(buf, h)
}

func (c Fixed[Payload]) EncodeTop(out TopOutput, h ErrorHandler) error {
	return EncodeTopFromNested(c, out, h)
}

func (c *Fixed[Payload]) DecodeNested(r *Reader, h ErrorHandler) error {
	size := c.Size()
	if size < 0 {
		return h.HandleError(invalidf("%T is not a fixed-size type", c.Payload))
	}
	b, err := r.ReadSlice(size, h)
	if err != nil {
		return err
	}
	if _, err := binary.Decode(b, Order, &c.Payload); err != nil {
		return h.HandleError(invalidf("%v", err))
	}
	return nil
}

func (c *Fixed[Payload]) DecodeTop(in []byte, h ErrorHandler) error {
	return DecodeTopFromNested(c, in, h)
}
