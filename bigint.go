package codec

import "math/big"

// BigUint is an arbitrary-precision non-negative integer. The zero value is 0.
// Nested: length-prefixed minimal big-endian magnitude. Top: the magnitude alone.
type BigUint struct {
	v *big.Int // nil is 0; never mutated once set
}

// BigInt is an arbitrary-precision signed integer in minimal big-endian two's
// complement. The zero value is 0.
type BigInt struct {
	v *big.Int // nil is 0; never mutated once set
}

var (
	_ Codec = (*BigUint)(nil)
	_ Codec = (*BigInt)(nil)
)

// NewBigUint returns x as a BigUint. It panics if x is negative.
func NewBigUint(x *big.Int) BigUint {
	if x.Sign() < 0 {
		panic("codec: negative value for BigUint")
	}
	return BigUint{v: new(big.Int).Set(x)}
}

// BigUintFrom64 returns x as a BigUint.
func BigUintFrom64(x uint64) BigUint {
	return BigUint{v: new(big.Int).SetUint64(x)}
}

// Int returns a copy of the value.
func (u BigUint) Int() *big.Int { return new(big.Int).Set(u.get()) }

func (u BigUint) get() *big.Int {
	if u.v == nil {
		return new(big.Int)
	}
	return u.v
}

func (u BigUint) String() string { return u.get().String() }

// Cmp compares u and o as in big.Int.Cmp.
func (u BigUint) Cmp(o BigUint) int { return u.get().Cmp(o.get()) }

func (u BigUint) EncodeNested(w *Writer, h ErrorHandler) error  { return w.WriteBytes(u.get().Bytes(), h) }
func (u BigUint) EncodeTop(out TopOutput, h ErrorHandler) error { return setTop(out, u.get().Bytes(), h) }

func (u *BigUint) DecodeNested(r *Reader, h ErrorHandler) error {
	n, err := r.ReadLength(h)
	if err != nil {
		return err
	}
	b, err := r.ReadSlice(n, h)
	if err != nil {
		return err
	}
	u.v = new(big.Int).SetBytes(b)
	return nil
}

func (u *BigUint) DecodeTop(in []byte, _ ErrorHandler) error {
	u.v = new(big.Int).SetBytes(in)
	return nil
}

// NewBigInt returns x as a BigInt.
func NewBigInt(x *big.Int) BigInt {
	return BigInt{v: new(big.Int).Set(x)}
}

// BigIntFrom64 returns x as a BigInt.
func BigIntFrom64(x int64) BigInt {
	return BigInt{v: new(big.Int).SetInt64(x)}
}

// Int returns a copy of the value.
func (i BigInt) Int() *big.Int { return new(big.Int).Set(i.get()) }

func (i BigInt) get() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

func (i BigInt) String() string { return i.get().String() }

// Cmp compares i and o as in big.Int.Cmp.
func (i BigInt) Cmp(o BigInt) int { return i.get().Cmp(o.get()) }

func (i BigInt) EncodeNested(w *Writer, h ErrorHandler) error {
	return w.WriteBytes(SignedBytes(i.get()), h)
}

func (i BigInt) EncodeTop(out TopOutput, h ErrorHandler) error {
	return setTop(out, SignedBytes(i.get()), h)
}

func (i *BigInt) DecodeNested(r *Reader, h ErrorHandler) error {
	n, err := r.ReadLength(h)
	if err != nil {
		return err
	}
	b, err := r.ReadSlice(n, h)
	if err != nil {
		return err
	}
	i.v = SetSignedBytes(new(big.Int), b)
	return nil
}

func (i *BigInt) DecodeTop(in []byte, _ ErrorHandler) error {
	i.v = SetSignedBytes(new(big.Int), in)
	return nil
}

var bigOne = big.NewInt(1)

// SignedBytes returns the minimal big-endian two's complement form of x.
// Zero is empty.
func SignedBytes(x *big.Int) []byte {
	switch x.Sign() {
	case 0:
		return nil
	case 1:
		b := x.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// -x-1 has the same bits as x with every bit inverted.
	m := new(big.Int).Neg(x)
	m.Sub(m, bigOne)
	b := m.Bytes()
	for j := range b {
		b[j] = ^b[j]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		b = append([]byte{0xFF}, b...)
	}
	return b
}

// SetSignedBytes sets x to the big-endian two's complement value of b and
// returns x.
func SetSignedBytes(x *big.Int, b []byte) *big.Int {
	if len(b) == 0 || b[0]&0x80 == 0 {
		return x.SetBytes(b)
	}
	inv := make([]byte, len(b))
	for j := range b {
		inv[j] = ^b[j]
	}
	x.SetBytes(inv)
	x.Add(x, bigOne)
	return x.Neg(x)
}
