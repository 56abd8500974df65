package codec

// List is a homogeneous sequence.
//
// Nested: a 4-byte element count followed by each element's nested encoding.
// Top: the nested elements back to back with no count; decoding reads
// elements until the input is depleted.
type List[T any, PT CodecPtr[T]] []T

// NewList wraps items in a List.
func NewList[T any, PT CodecPtr[T]](items ...T) List[T, PT] {
	return List[T, PT](items)
}

func (l List[T, PT]) Len() int { return len(l) }

// encodeItems writes each element with no count prefix.
func (l List[T, PT]) encodeItems(w *Writer, h ErrorHandler) error {
	for i := range l {
		if err := PT(&l[i]).EncodeNested(w, h); err != nil {
			return err
		}
	}
	return nil
}

func (l List[T, PT]) EncodeNested(w *Writer, h ErrorHandler) error {
	if err := w.WriteLength(len(l), h); err != nil {
		return err
	}
	return l.encodeItems(w, h)
}

func (l List[T, PT]) EncodeTop(out TopOutput, h ErrorHandler) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := l.encodeItems(NewWriter(buf), h); err != nil {
		return err
	}
	return setTop(out, buf.Bytes(), h)
}

func (l *List[T, PT]) DecodeNested(r *Reader, h ErrorHandler) error {
	count, err := r.ReadUint32(h)
	if err != nil {
		return err
	}
	// The count is untrusted; grow as elements actually decode.
	items := make([]T, 0, min(int(count), r.Remaining()))
	for i := uint32(0); i < count; i++ {
		var v T
		if err := PT(&v).DecodeNested(r, h); err != nil {
			return err
		}
		items = append(items, v)
	}
	*l = items
	return nil
}

func (l *List[T, PT]) DecodeTop(in []byte, h ErrorHandler) error {
	r := NewReader(in)
	var items []T
	for !r.IsDepleted() {
		start := r.Offset()
		var v T
		if err := PT(&v).DecodeNested(r, h); err != nil {
			return err
		}
		items = append(items, v)
		// A zero-width element would never deplete the input.
		if r.Offset() == start {
			return h.HandleError(invalidf("zero-width list element at top level"))
		}
	}
	*l = items
	return nil
}
