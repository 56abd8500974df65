package codec

// Option holds a value that may be absent.
//
// Nested: a 0 byte, or a 1 byte followed by the nested value.
// Top: empty for none, otherwise the nested form. A non-empty top input must
// start with the 1 tag, so [0] is rejected rather than read as none.
type Option[T any, PT CodecPtr[T]] struct {
	Value T
	Valid bool
}

// Some returns a present Option.
func Some[T any, PT CodecPtr[T]](v T) Option[T, PT] {
	return Option[T, PT]{Value: v, Valid: true}
}

// None returns an absent Option.
func None[T any, PT CodecPtr[T]]() Option[T, PT] {
	return Option[T, PT]{}
}

// Get returns the value and whether it is present.
func (o Option[T, PT]) Get() (T, bool) { return o.Value, o.Valid }

func (o Option[T, PT]) EncodeNested(w *Writer, h ErrorHandler) error {
	if !o.Valid {
		return w.WriteUint8(0, h)
	}
	if err := w.WriteUint8(1, h); err != nil {
		return err
	}
	return PT(&o.Value).EncodeNested(w, h)
}

func (o Option[T, PT]) EncodeTop(out TopOutput, h ErrorHandler) error {
	if !o.Valid {
		return setTop(out, nil, h)
	}
	return EncodeTopFromNested(o, out, h)
}

func (o *Option[T, PT]) DecodeNested(r *Reader, h ErrorHandler) error {
	tag, err := r.ReadUint8(h)
	if err != nil {
		return err
	}
	switch tag {
	case 0:
		*o = Option[T, PT]{}
		return nil
	case 1:
		var v T
		if err := PT(&v).DecodeNested(r, h); err != nil {
			return err
		}
		*o = Option[T, PT]{Value: v, Valid: true}
		return nil
	}
	return h.HandleError(invalidf("option tag 0x%02x", tag))
}

func (o *Option[T, PT]) DecodeTop(in []byte, h ErrorHandler) error {
	if len(in) == 0 {
		*o = Option[T, PT]{}
		return nil
	}
	if in[0] != 1 {
		return h.HandleError(invalidf("option top tag 0x%02x", in[0]))
	}
	return DecodeTopFromNested(o, in, h)
}
