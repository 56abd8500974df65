package codec

// Tagged unions are written as a 4-byte big-endian variant index, equal to
// the zero-based declaration order of the case, followed by the nested
// encodings of that case's fields in order. Unit cases are the index alone.
// The index is never omitted.
//
// A hand-written union looks like:
//
//	func (e Shape) EncodeNested(w *codec.Writer, h codec.ErrorHandler) error {
//		if err := codec.EncodeVariant(w, e.Kind, h); err != nil {
//			return err
//		}
//		switch e.Kind { ... encode the case's fields ... }
//	}
//
//	func (e *Shape) DecodeNested(r *codec.Reader, h codec.ErrorHandler) error {
//		kind, err := codec.DecodeVariant(r, shapeVariants, h)
//		...
//	}
//
// and bridges its top form with EncodeTopFromNested / DecodeTopFromNested.

// VariantIndexSize is the encoded width of a variant index.
const VariantIndexSize = 4

// EncodeVariant writes a variant index.
func EncodeVariant(w *Writer, index uint32, h ErrorHandler) error {
	return w.WriteUint32(index, h)
}

// DecodeVariant reads a variant index and checks it against the number of
// declared cases. An index at or past count fails with ErrInvalidValue.
func DecodeVariant(r *Reader, count uint32, h ErrorHandler) (uint32, error) {
	index, err := r.ReadUint32(h)
	if err != nil {
		return 0, err
	}
	if index >= count {
		return 0, h.HandleError(invalidf("variant index %d out of range [0, %d)", index, count))
	}
	return index, nil
}

// Variant is the index of a case in a UnitEnum.
type Variant uint32

// UnitEnum describes a union whose cases carry no fields, the common shape of
// status and kind enums.
type UnitEnum struct {
	Name  string
	Cases []string
}

// Count returns the number of declared cases.
func (e UnitEnum) Count() uint32 { return uint32(len(e.Cases)) }

// CaseName returns the declared name for v, or "" if v is out of range.
func (e UnitEnum) CaseName(v Variant) string {
	if uint32(v) >= e.Count() {
		return ""
	}
	return e.Cases[v]
}

// Lookup returns the variant with the given case name.
func (e UnitEnum) Lookup(name string) (Variant, bool) {
	for i, c := range e.Cases {
		if c == name {
			return Variant(i), true
		}
	}
	return 0, false
}

// Encode writes v as a unit case.
func (e UnitEnum) Encode(w *Writer, v Variant, h ErrorHandler) error {
	if uint32(v) >= e.Count() {
		return h.HandleError(invalidf("%s variant %d out of range", e.Name, v))
	}
	return EncodeVariant(w, uint32(v), h)
}

// Decode reads a unit case.
func (e UnitEnum) Decode(r *Reader, h ErrorHandler) (Variant, error) {
	i, err := DecodeVariant(r, e.Count(), h)
	return Variant(i), err
}
