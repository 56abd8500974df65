// Package schema describes codec types at run time. A type expression such
// as "list<tuple<u32,option<bytes>>>" parses into a Type, and a Value pairs
// a Type with a dynamic Go value so that it can be encoded and decoded
// without a static Go type.
//
// Dynamic values are represented as:
//
//	unit                          struct{}{}
//	bool                          bool
//	u8 u16 u32 u64 usize          uint64
//	i8 i16 i32 i64                int64
//	biguint bigint                *big.Int
//	bytes boxed h256              []byte
//	string                        string
//	option<T>                     nil (none) or the value of T
//	list<T> tuple<T...>           []any
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the shape of a Type.
type Kind uint8

const (
	Unit Kind = iota
	Bool
	U8
	U16
	U32
	U64
	Usize
	I8
	I16
	I32
	I64
	BigUint
	BigInt
	Bytes
	Boxed
	String
	H256
	Option
	List
	Tuple
)

var kindNames = [...]string{
	Unit:    "unit",
	Bool:    "bool",
	U8:      "u8",
	U16:     "u16",
	U32:     "u32",
	U64:     "u64",
	Usize:   "usize",
	I8:      "i8",
	I16:     "i16",
	I32:     "i32",
	I64:     "i64",
	BigUint: "biguint",
	BigInt:  "bigint",
	Bytes:   "bytes",
	Boxed:   "boxed",
	String:  "string",
	H256:    "h256",
	Option:  "option",
	List:    "list",
	Tuple:   "tuple",
}

// aliases accepted by Parse besides the canonical names.
var aliases = map[string]Kind{
	"vec":     List,
	"address": H256,
	"token":   Boxed,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func (k Kind) unsigned() bool { return k >= U8 && k <= Usize }
func (k Kind) signed() bool   { return k >= I8 && k <= I64 }

// bits returns the width of a fixed-size integer kind.
func (k Kind) bits() int {
	switch k {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32, Usize:
		return 32
	case U64, I64:
		return 64
	}
	return 0
}

var ErrSyntax = errors.New("schema: syntax error")

// Type is a parsed type expression.
type Type struct {
	Kind   Kind
	Elem   *Type   // option, list
	Fields []*Type // tuple
}

func (t *Type) String() string {
	switch t.Kind {
	case Option, List:
		return t.Kind.String() + "<" + t.Elem.String() + ">"
	case Tuple:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.String()
		}
		return "tuple<" + strings.Join(parts, ",") + ">"
	}
	return t.Kind.String()
}

// Parse parses a type expression. Names are case-insensitive.
func Parse(expr string) (*Type, error) {
	p := parser{s: strings.ToLower(expr)}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected %q", p.s[p.pos:])
	}
	return t, nil
}

// MustParse is Parse for expressions known to be valid.
func MustParse(expr string) *Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	s   string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) eat(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *parser) lookup(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	k, ok := aliases[name]
	return k, ok
}

func (p *parser) parse() (*Type, error) {
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected a type name")
	}
	kind, ok := p.lookup(name)
	if !ok {
		return nil, p.errorf("unknown type %q", name)
	}

	switch kind {
	case Option, List:
		params, err := p.params()
		if err != nil {
			return nil, err
		}
		if len(params) != 1 {
			return nil, p.errorf("%s takes one type parameter, got %d", kind, len(params))
		}
		return &Type{Kind: kind, Elem: params[0]}, nil
	case Tuple:
		params, err := p.params()
		if err != nil {
			return nil, err
		}
		return &Type{Kind: Tuple, Fields: params}, nil
	}
	return &Type{Kind: kind}, nil
}

func (p *parser) params() ([]*Type, error) {
	if !p.eat('<') {
		return nil, p.errorf("expected '<'")
	}
	var out []*Type
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.eat(',') {
			continue
		}
		if p.eat('>') {
			return out, nil
		}
		return nil, p.errorf("expected ',' or '>'")
	}
}
