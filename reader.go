package codec

// Reader is the byte source for nested decoding. It reads from an in-memory
// slice with a cursor that only moves forward. Slices it returns alias the
// input; decoders that keep them must copy.
type Reader struct {
	B []byte // source slice
	N int    // current read position
}

// NewReader creates a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{B: b}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.N }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.N >= len(r.B) {
		return 0
	}
	return len(r.B) - r.N
}

// IsDepleted reports whether every byte has been consumed.
func (r *Reader) IsDepleted() bool { return r.Remaining() == 0 }

// ReadSlice consumes the next n bytes.
func (r *Reader) ReadSlice(n int, h ErrorHandler) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, h.HandleError(tooShort(n, r.N, r.Remaining()))
	}
	b := r.B[r.N : r.N+n : r.N+n]
	r.N += n
	return b, nil
}

// ReadRest consumes every remaining byte.
func (r *Reader) ReadRest() []byte {
	b := r.B[r.N:len(r.B):len(r.B)]
	r.N = len(r.B)
	return b
}

// ReadLength reads a 4-byte length prefix. A length larger than the
// remaining input is reported before any payload is read.
func (r *Reader) ReadLength(h ErrorHandler) (int, error) {
	n, err := r.ReadUint32(h)
	if err != nil {
		return 0, err
	}
	if int64(n) > int64(r.Remaining()) {
		return 0, h.HandleError(tooShort(int(n), r.N, r.Remaining()))
	}
	return int(n), nil
}

// ReadBytes reads a length-prefixed byte string as a fresh copy.
func (r *Reader) ReadBytes(h ErrorHandler) ([]byte, error) {
	n, err := r.ReadLength(h)
	if err != nil {
		return nil, err
	}
	b, err := r.ReadSlice(n, h)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// --- Primitive Read Operations ---

func (r *Reader) ReadUint8(h ErrorHandler) (uint8, error) {
	b, err := r.ReadSlice(1, h)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16(h ErrorHandler) (uint16, error) {
	b, err := r.ReadSlice(2, h)
	if err != nil {
		return 0, err
	}
	return Order.Uint16(b), nil
}

func (r *Reader) ReadUint32(h ErrorHandler) (uint32, error) {
	b, err := r.ReadSlice(4, h)
	if err != nil {
		return 0, err
	}
	return Order.Uint32(b), nil
}

func (r *Reader) ReadUint64(h ErrorHandler) (uint64, error) {
	b, err := r.ReadSlice(8, h)
	if err != nil {
		return 0, err
	}
	return Order.Uint64(b), nil
}

func (r *Reader) ReadBool(h ErrorHandler) (bool, error) {
	b, err := r.ReadUint8(h)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, h.HandleError(invalidf("bool byte 0x%02x", b))
}
