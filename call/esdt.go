package call

import (
	"regexp"

	codec "github.com/oy3o/sccodec"
)

// TokenIdentifier names a token, e.g. "WEGLD-bd4d79". The native currency
// is the pseudo identifier EGLD.
type TokenIdentifier struct {
	codec.BoxedBytes
}

var _ codec.Codec = (*TokenIdentifier)(nil)

// EGLD is the identifier of the native currency.
var EGLD = Token("EGLD")

func Token(s string) TokenIdentifier {
	return TokenIdentifier{codec.NewBoxedBytes([]byte(s))}
}

func (t TokenIdentifier) IsEGLD() bool { return t.String() == "EGLD" }

var esdtPattern = regexp.MustCompile(`^[A-Z0-9]{3,10}-[0-9a-f]{6}$`)

// IsValidESDT reports whether t has the shape TICKER-xxxxxx.
func (t TokenIdentifier) IsValidESDT() bool { return esdtPattern.MatchString(t.String()) }

// TokenType is the kind of an ESDT, a fieldless enum on the wire.
type TokenType codec.Variant

const (
	Fungible TokenType = iota
	NonFungible
	SemiFungible
	Meta
	Invalid
)

var TokenTypes = codec.UnitEnum{
	Name:  "EsdtTokenType",
	Cases: []string{"Fungible", "NonFungible", "SemiFungible", "Meta", "Invalid"},
}

var _ codec.Codec = (*TokenType)(nil)

// TokenTypeForNonce returns Fungible for nonce 0 and NonFungible otherwise.
func TokenTypeForNonce(nonce uint64) TokenType {
	if nonce == 0 {
		return Fungible
	}
	return NonFungible
}

func (t TokenType) String() string { return TokenTypes.CaseName(codec.Variant(t)) }

func (t TokenType) EncodeNested(w *codec.Writer, h codec.ErrorHandler) error {
	return TokenTypes.Encode(w, codec.Variant(t), h)
}

func (t TokenType) EncodeTop(out codec.TopOutput, h codec.ErrorHandler) error {
	return codec.EncodeTopFromNested(t, out, h)
}

func (t *TokenType) DecodeNested(r *codec.Reader, h codec.ErrorHandler) error {
	v, err := TokenTypes.Decode(r, h)
	if err != nil {
		return err
	}
	*t = TokenType(v)
	return nil
}

func (t *TokenType) DecodeTop(in []byte, h codec.ErrorHandler) error {
	return codec.DecodeTopFromNested(t, in, h)
}

// TokenPayment is one token transfer: identifier, nonce and amount, encoded
// as the concatenation of its fields.
type TokenPayment struct {
	Token  TokenIdentifier
	Nonce  codec.U64
	Amount codec.BigUint
}

var _ codec.Codec = (*TokenPayment)(nil)

func (p TokenPayment) EncodeNested(w *codec.Writer, h codec.ErrorHandler) error {
	if err := p.Token.EncodeNested(w, h); err != nil {
		return err
	}
	if err := p.Nonce.EncodeNested(w, h); err != nil {
		return err
	}
	return p.Amount.EncodeNested(w, h)
}

func (p TokenPayment) EncodeTop(out codec.TopOutput, h codec.ErrorHandler) error {
	return codec.EncodeTopFromNested(p, out, h)
}

func (p *TokenPayment) DecodeNested(r *codec.Reader, h codec.ErrorHandler) error {
	if err := p.Token.DecodeNested(r, h); err != nil {
		return err
	}
	if err := p.Nonce.DecodeNested(r, h); err != nil {
		return err
	}
	return p.Amount.DecodeNested(r, h)
}

func (p *TokenPayment) DecodeTop(in []byte, h codec.ErrorHandler) error {
	return codec.DecodeTopFromNested(p, in, h)
}

// Builtin is an assembled call of a built-in function.
type Builtin struct {
	Function string
	Args     ArgBuffer
}

// Data renders the call in transaction data form.
func (b *Builtin) Data() string { return b.Args.Data(b.Function) }

// ESDTTransferCall builds an ESDTTransfer of amount of token that then calls
// function with the forwarded arguments. An empty function is a plain transfer.
func ESDTTransferCall(token TokenIdentifier, amount codec.BigUint, function string, forward [][]byte, h codec.ErrorHandler) (*Builtin, error) {
	b := &Builtin{Function: ESDTTransfer}
	if err := b.Args.PushArg(token, h); err != nil {
		return nil, err
	}
	if err := b.Args.PushArg(amount, h); err != nil {
		return nil, err
	}
	if err := b.pushFunction(function, forward, h); err != nil {
		return nil, err
	}
	return b, nil
}

// ESDTNFTTransferCall transfers amount of the token with the given nonce to
// the destination to. The call is sent to the sender's own address, so the
// destination travels as an argument: token, nonce, amount, destination,
// then the function and forwarded arguments.
func ESDTNFTTransferCall(token TokenIdentifier, nonce uint64, amount codec.BigUint, to codec.H256, function string, forward [][]byte, h codec.ErrorHandler) (*Builtin, error) {
	b := &Builtin{Function: ESDTNFTTransfer}
	if err := b.Args.PushArg(token, h); err != nil {
		return nil, err
	}
	if err := b.Args.PushArg(codec.U64(nonce), h); err != nil {
		return nil, err
	}
	if err := b.Args.PushArg(amount, h); err != nil {
		return nil, err
	}
	if err := b.Args.PushArg(to, h); err != nil {
		return nil, err
	}
	if err := b.pushFunction(function, forward, h); err != nil {
		return nil, err
	}
	return b, nil
}

// MultiESDTNFTTransferCall transfers several payments to one destination:
// destination, payment count, then token, nonce and amount per payment.
func MultiESDTNFTTransferCall(to codec.H256, payments []TokenPayment, function string, forward [][]byte, h codec.ErrorHandler) (*Builtin, error) {
	b := &Builtin{Function: MultiESDTNFTTransfer}
	if err := b.Args.PushArg(to, h); err != nil {
		return nil, err
	}
	if err := b.Args.PushArg(codec.Usize(len(payments)), h); err != nil {
		return nil, err
	}
	for _, p := range payments {
		if err := b.Args.PushArg(p.Token, h); err != nil {
			return nil, err
		}
		if err := b.Args.PushArg(p.Nonce, h); err != nil {
			return nil, err
		}
		if err := b.Args.PushArg(p.Amount, h); err != nil {
			return nil, err
		}
	}
	if err := b.pushFunction(function, forward, h); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Builtin) pushFunction(function string, forward [][]byte, h codec.ErrorHandler) error {
	if function == "" {
		return nil
	}
	if err := b.Args.PushArg(codec.String(function), h); err != nil {
		return err
	}
	for _, a := range forward {
		b.Args.PushRaw(a)
	}
	return nil
}
