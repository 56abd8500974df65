package codec

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// Order is the byte order of every multi-byte field in the format.
var Order = binary.BigEndian

func Ptr[T any](v T) *T { return &v } // Ptr is a helper function to create a pointer to a value, making test setup cleaner.

// appendUnsignedTop appends the shortest big-endian form of v. Zero is empty.
func appendUnsignedTop[T constraints.Unsigned](dst []byte, v T) []byte {
	var buf [8]byte
	Order.PutUint64(buf[:], uint64(v))
	i := 0
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	return append(dst, buf[i:]...)
}

// appendSignedTop appends the shortest big-endian two's complement form of v.
// Zero is empty.
func appendSignedTop[T constraints.Signed](dst []byte, v T) []byte {
	var buf [8]byte
	Order.PutUint64(buf[:], uint64(int64(v)))
	return append(dst, trimSigned(buf[:])...)
}

// trimSigned drops leading bytes that only repeat the sign.
func trimSigned(b []byte) []byte {
	for len(b) > 0 {
		switch {
		case b[0] == 0x00 && (len(b) == 1 || b[1]&0x80 == 0):
			b = b[1:]
		case b[0] == 0xFF && len(b) > 1 && b[1]&0x80 != 0:
			b = b[1:]
		default:
			return b
		}
	}
	return b
}

// decodeUnsignedTop reads a big-endian unsigned integer of at most width bytes.
func decodeUnsignedTop[T constraints.Unsigned](in []byte, h ErrorHandler) (T, error) {
	var zero T
	width := binary.Size(zero)
	if len(in) > width {
		return zero, h.HandleError(tooLong(len(in) - width))
	}
	var v uint64
	for _, b := range in {
		v = v<<8 | uint64(b)
	}
	return T(v), nil
}

// decodeSignedTop reads a sign-extended big-endian integer of at most width bytes.
func decodeSignedTop[T constraints.Signed](in []byte, h ErrorHandler) (T, error) {
	var zero T
	width := binary.Size(zero)
	if len(in) > width {
		return zero, h.HandleError(tooLong(len(in) - width))
	}
	if len(in) == 0 {
		return zero, nil
	}
	v := int64(int8(in[0]))
	for _, b := range in[1:] {
		v = v<<8 | int64(b)
	}
	return T(v), nil
}
