package format

import (
	"math/big"
	"testing"

	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTop(t *testing.T) {
	var c Top[codec.U32, *codec.U32]

	b, err := c.Encode(0x0102)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	v, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, codec.U32(0x0102), v)

	_, err = c.Decode([]byte{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, codec.ErrInputTooLong)
}

func TestNested(t *testing.T) {
	var c Nested[codec.U32, *codec.U32]

	b, err := c.Encode(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, b)

	_, err = c.Decode([]byte{0, 0, 1})
	assert.ErrorIs(t, err, codec.ErrInputTooShort)
	_, err = c.Decode([]byte{0, 0, 0, 1, 0})
	assert.ErrorIs(t, err, codec.ErrInputTooLong)
}

func TestWire(t *testing.T) {
	c := Wire{T: schema.MustParse("list<u16>")}

	b, err := c.Encode([]any{uint64(1), uint64(2)})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0, 2}, b)

	v, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(1), uint64(2)}, v)
}

func TestTranscodeRoundTrip(t *testing.T) {
	typ := schema.MustParse("tuple<u32, i8, biguint, bytes, string, option<bool>, list<h256>>")
	h := make([]byte, 32)
	h[31] = 7
	value := []any{
		uint64(70000),
		int64(-3),
		new(big.Int).Lsh(big.NewInt(1), 80),
		[]byte{0xca, 0xfe},
		"hi",
		true,
		[]any{h},
	}
	wire := Wire{T: typ}
	data, err := wire.Encode(value)
	require.NoError(t, err)

	others := map[string]Codec[any]{
		"cbor":         MustCBOR[any](true),
		"cbor-relaxed": MustCBOR[any](false),
		"msgpack":      Msgpack[any]{},
	}
	for name, inner := range others {
		t.Run(name, func(t *testing.T) {
			lit := Literal{T: typ, Inner: inner}

			out, err := Transcode[any](data, wire, lit)
			require.NoError(t, err)
			require.NotEmpty(t, out)

			back, err := Transcode[any](out, lit, wire)
			require.NoError(t, err)
			assert.Equal(t, data, back)
		})
	}
}

func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	a, err := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		b, err := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}

	m, err := c.Decode(a)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, m)
}

func TestMsgpackWidensIntegers(t *testing.T) {
	var c Msgpack[any]
	b, err := c.Encode([]any{uint64(5), int64(-5)})
	require.NoError(t, err)

	v, err := c.Decode(b)
	require.NoError(t, err)
	items, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	switch n := items[0].(type) {
	case int64:
		assert.EqualValues(t, 5, n)
	case uint64:
		assert.EqualValues(t, 5, n)
	default:
		t.Fatalf("unexpected %T", n)
	}
	assert.Equal(t, int64(-5), items[1])
}

func TestLimit(t *testing.T) {
	c := Limit[codec.U32]{Inner: Top[codec.U32, *codec.U32]{}, MaxDecode: 2}

	b, err := c.Encode(0xffff)
	require.NoError(t, err)
	v, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, codec.U32(0xffff), v)

	_, err = c.Decode([]byte{1, 0, 0})
	assert.ErrorIs(t, err, ErrTooLarge)

	c.MaxDecode = 0
	v, err = c.Decode([]byte{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, codec.U32(0x010000), v)
}

func TestTranscodeStopsOnDecodeError(t *testing.T) {
	wire := Wire{T: schema.MustParse("u8")}
	_, err := Transcode[any]([]byte{1, 2}, wire, Codec[any](Msgpack[any]{}))
	assert.ErrorIs(t, err, codec.ErrInputTooLong)
}

func TestWireNested(t *testing.T) {
	c := WireNested{T: schema.MustParse("option<string>")}

	b, err := c.Encode("ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 2, 'a', 'b'}, b)

	v, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "ab", v)

	_, err = c.Decode(append(b, 0))
	assert.ErrorIs(t, err, codec.ErrInputTooLong)
}

func TestYAMLLiteral(t *testing.T) {
	typ := schema.MustParse("tuple<bytes, biguint, list<u8>>")
	c := Literal{T: typ, Inner: YAML[any]{}}
	value := []any{[]byte{0xab}, new(big.Int).Lsh(big.NewInt(1), 70), []any{uint64(1), uint64(2)}}

	b, err := c.Encode(value)
	require.NoError(t, err)
	assert.Contains(t, string(b), "0xab")
	assert.Contains(t, string(b), "1180591620717411303424")

	back, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, value, back)
}
