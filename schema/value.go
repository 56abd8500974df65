package schema

import (
	"errors"
	"fmt"
	"math/big"

	codec "github.com/oy3o/sccodec"
)

// ErrValue is reported when a dynamic value does not fit its Type.
var ErrValue = errors.New("schema: value does not match type")

// Value pairs a dynamic value with its Type and implements codec.Codec.
// Decoding needs T to be set beforehand.
type Value struct {
	T *Type
	V any
}

var _ codec.Codec = (*Value)(nil)

// Some marks a present value of an option whose element is itself an option,
// where nil alone could not tell Some(None) from None. Decoding produces it
// for those types only; encoding accepts it for any option.
type Some struct {
	V any
}

func (v Value) EncodeNested(w *codec.Writer, h codec.ErrorHandler) error {
	return v.T.encodeNested(w, v.V, h)
}

func (v Value) EncodeTop(out codec.TopOutput, h codec.ErrorHandler) error {
	t := v.T
	switch t.Kind {
	case Option:
		if v.V == nil {
			return setTop(out, nil, h)
		}
		return codec.EncodeTopFromNested(v, out, h)
	case List:
		items, ok := v.V.([]any)
		if !ok {
			return h.HandleError(mismatch(t, v.V))
		}
		var buf sliceWriter
		w := codec.NewWriter(&buf)
		for _, item := range items {
			if err := t.Elem.encodeNested(w, item, h); err != nil {
				return err
			}
		}
		return setTop(out, buf, h)
	case Tuple:
		return codec.EncodeTopFromNested(v, out, h)
	}
	enc, err := t.primitive(v.V)
	if err != nil {
		return h.HandleError(err)
	}
	return enc.EncodeTop(out, h)
}

func (v *Value) DecodeNested(r *codec.Reader, h codec.ErrorHandler) error {
	x, err := v.T.decodeNested(r, h)
	if err != nil {
		return err
	}
	v.V = x
	return nil
}

func (v *Value) DecodeTop(in []byte, h codec.ErrorHandler) error {
	t := v.T
	switch t.Kind {
	case Option:
		if len(in) == 0 {
			v.V = nil
			return nil
		}
		if in[0] != 1 {
			return h.HandleError(fmt.Errorf("%w: option top tag 0x%02x", codec.ErrInvalidValue, in[0]))
		}
		return codec.DecodeTopFromNested(v, in, h)
	case List:
		r := codec.NewReader(in)
		items := []any{}
		for !r.IsDepleted() {
			start := r.Offset()
			x, err := t.Elem.decodeNested(r, h)
			if err != nil {
				return err
			}
			if r.Offset() == start {
				return h.HandleError(fmt.Errorf("%w: zero-width list element at top level", codec.ErrInvalidValue))
			}
			items = append(items, x)
		}
		v.V = items
		return nil
	case Tuple:
		return codec.DecodeTopFromNested(v, in, h)
	}
	d := t.decoder()
	if err := d.DecodeTop(in, h); err != nil {
		return err
	}
	v.V = dynamic(d)
	return nil
}

// EncodeTop returns the top encoding of x as a value of t.
func (t *Type) EncodeTop(x any, h codec.ErrorHandler) ([]byte, error) {
	return codec.EncodeTop(Value{T: t, V: x}, h)
}

// EncodeNested returns the nested encoding of x as a value of t.
func (t *Type) EncodeNested(x any, h codec.ErrorHandler) ([]byte, error) {
	return codec.EncodeNested(Value{T: t, V: x}, h)
}

// DecodeTop decodes a value of t from the whole of in.
func (t *Type) DecodeTop(in []byte, h codec.ErrorHandler) (any, error) {
	v := Value{T: t}
	if err := v.DecodeTop(in, h); err != nil {
		return nil, err
	}
	return v.V, nil
}

// DecodeNested decodes the next value of t from r.
func (t *Type) DecodeNested(r *codec.Reader, h codec.ErrorHandler) (any, error) {
	return t.decodeNested(r, h)
}

func (t *Type) encodeNested(w *codec.Writer, x any, h codec.ErrorHandler) error {
	switch t.Kind {
	case Option:
		if x == nil {
			return w.WriteUint8(0, h)
		}
		if err := w.WriteUint8(1, h); err != nil {
			return err
		}
		if some, ok := x.(Some); ok {
			x = some.V
		}
		return t.Elem.encodeNested(w, x, h)
	case List:
		items, ok := x.([]any)
		if !ok {
			return h.HandleError(mismatch(t, x))
		}
		if err := w.WriteLength(len(items), h); err != nil {
			return err
		}
		for _, item := range items {
			if err := t.Elem.encodeNested(w, item, h); err != nil {
				return err
			}
		}
		return nil
	case Tuple:
		items, ok := x.([]any)
		if !ok || len(items) != len(t.Fields) {
			return h.HandleError(mismatch(t, x))
		}
		for i, f := range t.Fields {
			if err := f.encodeNested(w, items[i], h); err != nil {
				return err
			}
		}
		return nil
	}
	enc, err := t.primitive(x)
	if err != nil {
		return h.HandleError(err)
	}
	return enc.EncodeNested(w, h)
}

func (t *Type) decodeNested(r *codec.Reader, h codec.ErrorHandler) (any, error) {
	switch t.Kind {
	case Option:
		tag, err := r.ReadUint8(h)
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return nil, nil
		case 1:
			x, err := t.Elem.decodeNested(r, h)
			if err != nil || t.Elem.Kind != Option {
				return x, err
			}
			return Some{V: x}, nil
		}
		return nil, h.HandleError(fmt.Errorf("%w: option tag 0x%02x", codec.ErrInvalidValue, tag))
	case List:
		count, err := r.ReadUint32(h)
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, min(int(count), r.Remaining()))
		for i := uint32(0); i < count; i++ {
			x, err := t.Elem.decodeNested(r, h)
			if err != nil {
				return nil, err
			}
			items = append(items, x)
		}
		return items, nil
	case Tuple:
		items := make([]any, len(t.Fields))
		for i, f := range t.Fields {
			x, err := f.decodeNested(r, h)
			if err != nil {
				return nil, err
			}
			items[i] = x
		}
		return items, nil
	}
	d := t.decoder()
	if err := d.DecodeNested(r, h); err != nil {
		return nil, err
	}
	return dynamic(d), nil
}

// primitive converts x into the root codec type for t.
func (t *Type) primitive(x any) (codec.Encoder, error) {
	switch k := t.Kind; {
	case k == Unit:
		if x != nil && x != (struct{}{}) {
			return nil, mismatch(t, x)
		}
		return codec.Unit{}, nil
	case k == Bool:
		b, ok := x.(bool)
		if !ok {
			return nil, mismatch(t, x)
		}
		return codec.Bool(b), nil
	case k.unsigned():
		n, ok := x.(uint64)
		if !ok || (k.bits() < 64 && n>>k.bits() != 0) {
			return nil, mismatch(t, x)
		}
		switch k {
		case U8:
			return codec.U8(n), nil
		case U16:
			return codec.U16(n), nil
		case U32:
			return codec.U32(n), nil
		case Usize:
			return codec.Usize(n), nil
		}
		return codec.U64(n), nil
	case k.signed():
		n, ok := x.(int64)
		if !ok || !fitsSigned(n, k.bits()) {
			return nil, mismatch(t, x)
		}
		switch k {
		case I8:
			return codec.I8(n), nil
		case I16:
			return codec.I16(n), nil
		case I32:
			return codec.I32(n), nil
		}
		return codec.I64(n), nil
	case k == BigUint, k == BigInt:
		n, ok := x.(*big.Int)
		if !ok || n == nil {
			return nil, mismatch(t, x)
		}
		if k == BigInt {
			return codec.NewBigInt(n), nil
		}
		if n.Sign() < 0 {
			return nil, mismatch(t, x)
		}
		return codec.NewBigUint(n), nil
	case k == Bytes, k == Boxed:
		b, ok := x.([]byte)
		if !ok {
			return nil, mismatch(t, x)
		}
		if k == Boxed {
			return codec.NewBoxedBytes(b), nil
		}
		return codec.Bytes(b), nil
	case k == String:
		s, ok := x.(string)
		if !ok {
			return nil, mismatch(t, x)
		}
		return codec.String(s), nil
	case k == H256:
		b, ok := x.([]byte)
		if !ok || len(b) != len(codec.H256{}) {
			return nil, mismatch(t, x)
		}
		return codec.H256(b), nil
	}
	return nil, mismatch(t, x)
}

// decoder allocates the root codec type for a primitive t.
func (t *Type) decoder() codec.Decoder {
	switch t.Kind {
	case Unit:
		return new(codec.Unit)
	case Bool:
		return new(codec.Bool)
	case U8:
		return new(codec.U8)
	case U16:
		return new(codec.U16)
	case U32:
		return new(codec.U32)
	case U64:
		return new(codec.U64)
	case Usize:
		return new(codec.Usize)
	case I8:
		return new(codec.I8)
	case I16:
		return new(codec.I16)
	case I32:
		return new(codec.I32)
	case I64:
		return new(codec.I64)
	case BigUint:
		return new(codec.BigUint)
	case BigInt:
		return new(codec.BigInt)
	case Bytes:
		return new(codec.Bytes)
	case Boxed:
		return new(codec.BoxedBytes)
	case String:
		return new(codec.String)
	case H256:
		return new(codec.H256)
	}
	panic("schema: no decoder for " + t.String())
}

// dynamic converts a decoded root codec value to its dynamic form.
func dynamic(d codec.Decoder) any {
	switch v := d.(type) {
	case *codec.Unit:
		return struct{}{}
	case *codec.Bool:
		return bool(*v)
	case *codec.U8:
		return uint64(*v)
	case *codec.U16:
		return uint64(*v)
	case *codec.U32:
		return uint64(*v)
	case *codec.U64:
		return uint64(*v)
	case *codec.Usize:
		return uint64(*v)
	case *codec.I8:
		return int64(*v)
	case *codec.I16:
		return int64(*v)
	case *codec.I32:
		return int64(*v)
	case *codec.I64:
		return int64(*v)
	case *codec.BigUint:
		return v.Int()
	case *codec.BigInt:
		return v.Int()
	case *codec.Bytes:
		return []byte(*v)
	case *codec.BoxedBytes:
		return append([]byte(nil), v.Bytes()...)
	case *codec.String:
		return string(*v)
	case *codec.H256:
		return append([]byte(nil), v[:]...)
	}
	panic(fmt.Sprintf("schema: unexpected decoder %T", d))
}

func fitsSigned(n int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	lim := int64(1) << (bits - 1)
	return n >= -lim && n < lim
}

func mismatch(t *Type, x any) error {
	return fmt.Errorf("%w: %s from %T(%v)", ErrValue, t, x, x)
}

func setTop(out codec.TopOutput, p []byte, h codec.ErrorHandler) error {
	if err := out.SetBytes(p); err != nil {
		return h.HandleError(fmt.Errorf("%w: %w", codec.ErrSinkRejected, err))
	}
	return nil
}

type sliceWriter []byte

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
