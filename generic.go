package codec

// EncodeTopFromNested is the default top encoding: the nested encoding of v,
// built in a scratch buffer and handed to out in a single SetBytes call.
func EncodeTopFromNested(v NestedEncoder, out TopOutput, h ErrorHandler) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := v.EncodeNested(NewWriter(buf), h); err != nil {
		return err
	}
	return setTop(out, buf.Bytes(), h)
}

// DecodeTopFromNested is the default top decoding: v is nested-decoded from
// the whole of in, and any byte left over fails with ErrInputTooLong.
func DecodeTopFromNested(v NestedDecoder, in []byte, h ErrorHandler) error {
	r := NewReader(in)
	if err := v.DecodeNested(r, h); err != nil {
		return err
	}
	if !r.IsDepleted() {
		return h.HandleError(tooLong(r.Remaining()))
	}
	return nil
}

// setTop hands p to out, classifying output failures as ErrSinkRejected.
func setTop(out TopOutput, p []byte, h ErrorHandler) error {
	if err := out.SetBytes(p); err != nil {
		return h.HandleError(sinkError(err))
	}
	return nil
}

// EncodeTop returns the top encoding of v.
func EncodeTop(v TopEncoder, h ErrorHandler) ([]byte, error) {
	var out TopBuffer
	if err := v.EncodeTop(&out, h); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodeNested returns the nested encoding of v.
func EncodeNested(v NestedEncoder, h ErrorHandler) ([]byte, error) {
	w := &sliceWriter{}
	if err := v.EncodeNested(NewWriter(w), h); err != nil {
		return nil, err
	}
	return w.b, nil
}

// DecodeTop decodes a T from the whole of in.
func DecodeTop[T any, PT DecoderPtr[T]](in []byte, h ErrorHandler) (T, error) {
	var v T
	if err := PT(&v).DecodeTop(in, h); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeNested decodes the next T from r.
func DecodeNested[T any, PT DecoderPtr[T]](r *Reader, h ErrorHandler) (T, error) {
	var v T
	if err := PT(&v).DecodeNested(r, h); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Marshal returns the top encoding of v, reporting failures as errors.
func Marshal(v TopEncoder) ([]byte, error) {
	return EncodeTop(v, ResultHandler{})
}

// Unmarshal top-decodes data into v, reporting failures as errors.
func Unmarshal(data []byte, v TopDecoder) error {
	return v.DecodeTop(data, ResultHandler{})
}

// MarshalNested returns the nested encoding of v, reporting failures as errors.
func MarshalNested(v NestedEncoder) ([]byte, error) {
	return EncodeNested(v, ResultHandler{})
}

// UnmarshalNested nested-decodes one value from the front of data and
// returns the number of bytes it occupied.
func UnmarshalNested(data []byte, v NestedDecoder) (int, error) {
	r := NewReader(data)
	if err := v.DecodeNested(r, ResultHandler{}); err != nil {
		return r.Offset(), err
	}
	return r.Offset(), nil
}

type sliceWriter struct{ b []byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}
