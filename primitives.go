package codec

// Fixed-width primitives. Nested encodings have no length prefix because the
// width is known statically; top encodings of integers are minimal.

type (
	U8    uint8
	U16   uint16
	U32   uint32
	U64   uint64
	I8    int8
	I16   int16
	I32   int32
	I64   int64
	Bool  bool
	Usize uint32 // lengths and indices; always 4 bytes nested.
	Unit  struct{}
)

var (
	_ Codec = (*U8)(nil)
	_ Codec = (*U16)(nil)
	_ Codec = (*U32)(nil)
	_ Codec = (*U64)(nil)
	_ Codec = (*I8)(nil)
	_ Codec = (*I16)(nil)
	_ Codec = (*I32)(nil)
	_ Codec = (*I64)(nil)
	_ Codec = (*Bool)(nil)
	_ Codec = (*Usize)(nil)
	_ Codec = (*Unit)(nil)
)

// --- unsigned ---

func (v U8) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint8(uint8(v), h) }
func (v U8) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [1]byte
	return setTop(out, appendUnsignedTop(buf[:0], uint8(v)), h)
}

func (v *U8) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint8(h)
	if err != nil {
		return err
	}
	*v = U8(x)
	return nil
}

func (v *U8) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeUnsignedTop[uint8](in, h)
	if err != nil {
		return err
	}
	*v = U8(x)
	return nil
}

func (v U16) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint16(uint16(v), h) }
func (v U16) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [2]byte
	return setTop(out, appendUnsignedTop(buf[:0], uint16(v)), h)
}

func (v *U16) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint16(h)
	if err != nil {
		return err
	}
	*v = U16(x)
	return nil
}

func (v *U16) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeUnsignedTop[uint16](in, h)
	if err != nil {
		return err
	}
	*v = U16(x)
	return nil
}

func (v U32) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint32(uint32(v), h) }
func (v U32) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [4]byte
	return setTop(out, appendUnsignedTop(buf[:0], uint32(v)), h)
}

func (v *U32) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint32(h)
	if err != nil {
		return err
	}
	*v = U32(x)
	return nil
}

func (v *U32) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeUnsignedTop[uint32](in, h)
	if err != nil {
		return err
	}
	*v = U32(x)
	return nil
}

func (v U64) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint64(uint64(v), h) }
func (v U64) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [8]byte
	return setTop(out, appendUnsignedTop(buf[:0], uint64(v)), h)
}

func (v *U64) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint64(h)
	if err != nil {
		return err
	}
	*v = U64(x)
	return nil
}

func (v *U64) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeUnsignedTop[uint64](in, h)
	if err != nil {
		return err
	}
	*v = U64(x)
	return nil
}

func (v Usize) EncodeNested(w *Writer, h ErrorHandler) error {
	return U32(v).EncodeNested(w, h)
}

func (v Usize) EncodeTop(out TopOutput, h ErrorHandler) error {
	return U32(v).EncodeTop(out, h)
}

func (v *Usize) DecodeNested(r *Reader, h ErrorHandler) error {
	return (*U32)(v).DecodeNested(r, h)
}

func (v *Usize) DecodeTop(in []byte, h ErrorHandler) error {
	return (*U32)(v).DecodeTop(in, h)
}

// --- signed ---

func (v I8) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint8(uint8(v), h) }
func (v I8) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [8]byte
	return setTop(out, appendSignedTop(buf[:0], int8(v)), h)
}

func (v *I8) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint8(h)
	if err != nil {
		return err
	}
	*v = I8(x)
	return nil
}

func (v *I8) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeSignedTop[int8](in, h)
	if err != nil {
		return err
	}
	*v = I8(x)
	return nil
}

func (v I16) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint16(uint16(v), h) }
func (v I16) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [8]byte
	return setTop(out, appendSignedTop(buf[:0], int16(v)), h)
}

func (v *I16) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint16(h)
	if err != nil {
		return err
	}
	*v = I16(x)
	return nil
}

func (v *I16) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeSignedTop[int16](in, h)
	if err != nil {
		return err
	}
	*v = I16(x)
	return nil
}

func (v I32) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint32(uint32(v), h) }
func (v I32) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [8]byte
	return setTop(out, appendSignedTop(buf[:0], int32(v)), h)
}

func (v *I32) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint32(h)
	if err != nil {
		return err
	}
	*v = I32(x)
	return nil
}

func (v *I32) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeSignedTop[int32](in, h)
	if err != nil {
		return err
	}
	*v = I32(x)
	return nil
}

func (v I64) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteUint64(uint64(v), h) }
func (v I64) EncodeTop(out TopOutput, h ErrorHandler) error {
	var buf [8]byte
	return setTop(out, appendSignedTop(buf[:0], int64(v)), h)
}

func (v *I64) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadUint64(h)
	if err != nil {
		return err
	}
	*v = I64(x)
	return nil
}

func (v *I64) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeSignedTop[int64](in, h)
	if err != nil {
		return err
	}
	*v = I64(x)
	return nil
}

// --- bool ---

func (v Bool) EncodeNested(w *Writer, h ErrorHandler) error { return w.WriteBool(bool(v), h) }

// EncodeTop writes [1] for true and nothing for false.
func (v Bool) EncodeTop(out TopOutput, h ErrorHandler) error {
	if v {
		return setTop(out, []byte{1}, h)
	}
	return setTop(out, nil, h)
}

func (v *Bool) DecodeNested(r *Reader, h ErrorHandler) error {
	x, err := r.ReadBool(h)
	if err != nil {
		return err
	}
	*v = Bool(x)
	return nil
}

func (v *Bool) DecodeTop(in []byte, h ErrorHandler) error {
	x, err := decodeUnsignedTop[uint8](in, h)
	if err != nil {
		return err
	}
	switch x {
	case 0:
		*v = false
	case 1:
		*v = true
	default:
		return h.HandleError(invalidf("bool byte 0x%02x", x))
	}
	return nil
}

// --- unit ---

func (Unit) EncodeNested(*Writer, ErrorHandler) error      { return nil }
func (Unit) EncodeTop(out TopOutput, h ErrorHandler) error { return setTop(out, nil, h) }
func (*Unit) DecodeNested(*Reader, ErrorHandler) error     { return nil }
func (*Unit) DecodeTop(in []byte, h ErrorHandler) error {
	if len(in) > 0 {
		return h.HandleError(tooLong(len(in)))
	}
	return nil
}
