package call

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/oy3o/sccodec"
)

func TestArgs(t *testing.T) {
	h := codec.ResultHandler{}
	a := NewArgs([][]byte{{0x2A}, []byte("hello"), {}}, h)
	require.NoError(t, a.CheckCount(3))
	assert.ErrorIs(t, a.CheckCount(2), ErrWrongArgCount)

	n, err := Next[codec.U32](a)
	require.NoError(t, err)
	assert.Equal(t, codec.U32(42), n)

	s, err := Next[codec.String](a)
	require.NoError(t, err)
	assert.Equal(t, codec.String("hello"), s)

	assert.ErrorIs(t, a.Done(), ErrWrongArgCount)
	opt, err := Next[codec.Option[codec.U8, *codec.U8]](a)
	require.NoError(t, err)
	assert.False(t, opt.Valid)
	require.NoError(t, a.Done())

	_, err = Next[codec.U32](a)
	assert.ErrorIs(t, err, ErrWrongArgCount)
	assert.Zero(t, a.Remaining())
}

func TestArgsDecodeFailure(t *testing.T) {
	a := NewArgs([][]byte{{1, 2, 3}}, codec.ResultHandler{})
	_, err := Next[codec.U16](a)
	assert.ErrorIs(t, err, codec.ErrInputTooLong)
}

func TestArgsUnderExitHandler(t *testing.T) {
	calls := 0
	h := codec.Exit(0, func(_ int, err error) {
		calls++
		codec.Trap(0, err)
	})

	err := codec.Catch(func() {
		a := NewArgs(nil, h)
		_ = a.CheckCount(1)
		t.Error("unreachable")
	})
	assert.ErrorIs(t, err, ErrWrongArgCount)
	assert.Equal(t, 1, calls)
}

func TestResults(t *testing.T) {
	r := NewResults(codec.ResultHandler{})
	require.NoError(t, r.Finish(codec.U64(256)))
	require.NoError(t, r.Finish(codec.Bool(false)))
	require.NoError(t, r.Finish(codec.List[codec.U16, *codec.U16]{1, 2}))

	vals := r.Values()
	require.Len(t, vals, 3)
	assert.Equal(t, []byte{1, 0}, vals[0])
	assert.Empty(t, vals[1])
	assert.Equal(t, []byte{0, 1, 0, 2}, vals[2])
}

func TestArgBuffer(t *testing.T) {
	var b ArgBuffer
	h := codec.ResultHandler{}
	require.NoError(t, b.PushArg(codec.U32(1), h))
	require.NoError(t, b.PushArg(codec.U32(0), h))
	raw := []byte{0xAB}
	b.PushRaw(raw)
	raw[0] = 0

	require.Equal(t, 3, b.Len())
	assert.Equal(t, []byte{1}, b.Args()[0])
	assert.Empty(t, b.Args()[1], "zero top-encodes as an empty slot")
	assert.Equal(t, []byte{0xAB}, b.Args()[2])
	assert.Equal(t, "doIt@01@@ab", b.Data("doIt"))

	fn, args, err := ParseData("doIt@01@@ab")
	require.NoError(t, err)
	assert.Equal(t, "doIt", fn)
	require.Len(t, args, 3)
	assert.Equal(t, []byte{1}, args[0])
	assert.Empty(t, args[1])
	assert.Equal(t, []byte{0xAB}, args[2])

	_, _, err = ParseData("doIt@zz")
	assert.Error(t, err)
}

func TestBuiltinNames(t *testing.T) {
	assert.True(t, IsESDTTransfer(ESDTTransfer))
	assert.True(t, IsESDTTransfer(ESDTNFTTransfer))
	assert.True(t, IsESDTTransfer(MultiESDTNFTTransfer))
	assert.False(t, IsESDTTransfer(ESDTLocalMint))
	assert.False(t, IsESDTTransfer(UpgradeContract))
	assert.False(t, IsESDTTransfer("esdttransfer"))
}

func TestESDTTransferCall(t *testing.T) {
	h := codec.ResultHandler{}
	token := Token("TOK-123456")
	amount := codec.NewBigUint(big.NewInt(1000))

	c, err := ESDTTransferCall(token, amount, "acceptEsdtPayment", [][]byte{{7}}, h)
	require.NoError(t, err)
	assert.Equal(t, ESDTTransfer, c.Function)
	assert.Equal(t, [][]byte{[]byte("TOK-123456"), {0x03, 0xE8}, []byte("acceptEsdtPayment"), {7}}, c.Args.Args())
	assert.Equal(t, "ESDTTransfer@544f4b2d313233343536@03e8@616363657074457364745061796d656e74@07", c.Data())

	plain, err := ESDTTransferCall(token, amount, "", nil, h)
	require.NoError(t, err)
	assert.Equal(t, 2, plain.Args.Len())
}

func TestESDTNFTTransferCall(t *testing.T) {
	var to codec.H256
	to[0] = 0xAB
	c, err := ESDTNFTTransferCall(Token("NFT-abcdef"), 5, codec.BigUintFrom64(1), to, "claim", [][]byte{{9}}, codec.ResultHandler{})
	require.NoError(t, err)
	assert.Equal(t, ESDTNFTTransfer, c.Function)
	assert.Equal(t, [][]byte{[]byte("NFT-abcdef"), {5}, {1}, to[:], []byte("claim"), {9}}, c.Args.Args())
	assert.Equal(t, "ESDTNFTTransfer@4e46542d616263646566@05@01@ab"+strings.Repeat("00", 31)+"@636c61696d@09", c.Data())

	plain, err := ESDTNFTTransferCall(Token("NFT-abcdef"), 5, codec.BigUintFrom64(1), to, "", nil, codec.ResultHandler{})
	require.NoError(t, err)
	assert.Equal(t, 4, plain.Args.Len())
}

func TestMultiESDTNFTTransferCall(t *testing.T) {
	var to codec.H256
	to[31] = 1
	payments := []TokenPayment{
		{Token: Token("AAA-000000"), Nonce: 0, Amount: codec.BigUintFrom64(10)},
		{Token: Token("BBB-111111"), Nonce: 2, Amount: codec.BigUintFrom64(1)},
	}
	c, err := MultiESDTNFTTransferCall(to, payments, "", nil, codec.ResultHandler{})
	require.NoError(t, err)
	args := c.Args.Args()
	require.Len(t, args, 8)
	assert.Equal(t, to[:], args[0])
	assert.Equal(t, []byte{2}, args[1])
	assert.Equal(t, []byte("AAA-000000"), args[2])
	assert.Empty(t, args[3])
	assert.Equal(t, []byte{10}, args[4])
	assert.Equal(t, []byte{2}, args[6])
}

func TestTokenIdentifier(t *testing.T) {
	assert.True(t, EGLD.IsEGLD())
	assert.False(t, EGLD.IsValidESDT())
	assert.True(t, Token("WEGLD-bd4d79").IsValidESDT())
	assert.False(t, Token("wegld-bd4d79").IsValidESDT())
	assert.False(t, Token("WEGLD-BD4D79").IsValidESDT())

	nested, err := codec.MarshalNested(Token("AB"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2, 'A', 'B'}, nested)
}

func TestTokenType(t *testing.T) {
	for i, name := range TokenTypes.Cases {
		tt := TokenType(i)
		assert.Equal(t, name, tt.String())

		nested, err := codec.MarshalNested(tt)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, byte(i)}, nested, "the index is never omitted")

		top, err := codec.Marshal(tt)
		require.NoError(t, err)
		assert.Equal(t, nested, top)

		got, err := codec.DecodeTop[TokenType](top, codec.ResultHandler{})
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}

	_, err := codec.DecodeTop[TokenType]([]byte{0, 0, 0, 5}, codec.ResultHandler{})
	assert.ErrorIs(t, err, codec.ErrInvalidValue)

	assert.Equal(t, Fungible, TokenTypeForNonce(0))
	assert.Equal(t, NonFungible, TokenTypeForNonce(3))
}

func TestTokenPayment(t *testing.T) {
	p := TokenPayment{Token: Token("T-000001"), Nonce: 1, Amount: codec.BigUintFrom64(255)}
	nested, err := codec.MarshalNested(p)
	require.NoError(t, err)

	expected := []byte{0, 0, 0, 8}
	expected = append(expected, "T-000001"...)
	expected = append(expected, 0, 0, 0, 0, 0, 0, 0, 1)
	expected = append(expected, 0, 0, 0, 1, 0xFF)
	assert.Equal(t, expected, nested)

	got, err := codec.DecodeTop[TokenPayment](nested, codec.ResultHandler{})
	require.NoError(t, err)
	assert.Equal(t, "T-000001", got.Token.String())
	assert.Equal(t, codec.U64(1), got.Nonce)
	assert.Zero(t, got.Amount.Cmp(p.Amount))
}
