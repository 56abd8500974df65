package schema

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseLiteral reads a YAML literal and coerces it to a dynamic value of t.
// Sequences are lists and tuples, null is none. Scalars keep their source
// text so that 0x-prefixed byte strings and integers wider than 64 bits
// survive.
func ParseLiteral(t *Type, text string) (any, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(text), &n); err != nil {
		return nil, fmt.Errorf("schema: literal: %w", err)
	}
	lit, err := nodeLiteral(&n)
	if err != nil {
		return nil, err
	}
	return t.FromLiteral(lit)
}

func nodeLiteral(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeLiteral(n.Content[0])
	case yaml.AliasNode:
		return nodeLiteral(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			x, err := nodeLiteral(c)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		}
		return n.Value, nil
	}
	return nil, fmt.Errorf("schema: unsupported literal at line %d", n.Line)
}

// FromLiteral coerces a value produced by a YAML decoder to the dynamic
// form of t.
func (t *Type) FromLiteral(lit any) (any, error) {
	switch k := t.Kind; {
	case k == Unit:
		if lit != nil {
			return nil, mismatch(t, lit)
		}
		return struct{}{}, nil
	case k == Bool:
		b, ok := lit.(bool)
		if !ok {
			return nil, mismatch(t, lit)
		}
		return b, nil
	case k.unsigned():
		n, err := literalUint(lit)
		if err != nil || (k.bits() < 64 && n>>k.bits() != 0) {
			return nil, mismatch(t, lit)
		}
		return n, nil
	case k.signed():
		n, err := literalInt(lit)
		if err != nil || !fitsSigned(n, k.bits()) {
			return nil, mismatch(t, lit)
		}
		return n, nil
	case k == BigUint, k == BigInt:
		n, err := literalBig(lit)
		if err != nil || (k == BigUint && n.Sign() < 0) {
			return nil, mismatch(t, lit)
		}
		return n, nil
	case k == Bytes, k == Boxed, k == H256:
		var (
			b   []byte
			err error
		)
		switch v := lit.(type) {
		case string:
			b, err = literalBytes(v)
		case []byte:
			b = append([]byte(nil), v...)
		default:
			return nil, mismatch(t, lit)
		}
		if err != nil || (k == H256 && len(b) != 32) {
			return nil, mismatch(t, lit)
		}
		return b, nil
	case k == String:
		s, ok := lit.(string)
		if !ok {
			return nil, mismatch(t, lit)
		}
		return s, nil
	case k == Option:
		if lit == nil {
			return nil, nil
		}
		if !t.boxedLiteral() {
			return t.Elem.FromLiteral(lit)
		}
		items, ok := lit.([]any)
		if !ok || len(items) != 1 {
			return nil, mismatch(t, lit)
		}
		x, err := t.Elem.FromLiteral(items[0])
		if err != nil || t.Elem.Kind != Option {
			return x, err
		}
		return Some{V: x}, nil
	case k == List:
		items, ok := lit.([]any)
		if !ok {
			return nil, mismatch(t, lit)
		}
		out := make([]any, len(items))
		for i, item := range items {
			x, err := t.Elem.FromLiteral(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = x
		}
		return out, nil
	case k == Tuple:
		items, ok := lit.([]any)
		if !ok || len(items) != len(t.Fields) {
			return nil, mismatch(t, lit)
		}
		out := make([]any, len(items))
		for i, f := range t.Fields {
			x, err := f.FromLiteral(items[i])
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", i, err)
			}
			out[i] = x
		}
		return out, nil
	}
	return nil, mismatch(t, lit)
}

// ToLiteral converts a dynamic value of t into a form that marshals to
// readable YAML or JSON: byte strings become 0x hex and big integers
// decimal strings. A present option<unit> or option<option<T>> becomes a
// one-element sequence.
func (t *Type) ToLiteral(x any) any {
	switch t.Kind {
	case Unit:
		return nil
	case Bytes, Boxed, H256:
		if b, ok := x.([]byte); ok {
			return "0x" + hex.EncodeToString(b)
		}
	case BigUint, BigInt:
		if n, ok := x.(*big.Int); ok {
			return n.String()
		}
	case Option:
		if x == nil {
			return nil
		}
		if some, ok := x.(Some); ok {
			x = some.V
		}
		lit := t.Elem.ToLiteral(x)
		if t.boxedLiteral() {
			return []any{lit}
		}
		return lit
	case List, Tuple:
		items, _ := x.([]any)
		out := make([]any, len(items))
		for i, item := range items {
			f := t.Elem
			if t.Kind == Tuple {
				f = t.Fields[i]
			}
			out[i] = f.ToLiteral(item)
		}
		return out
	}
	return x
}

// boxedLiteral reports whether a present value of the option t is written as
// a one-element sequence. That is needed when the element's own literal can
// be null, as for unit and option elements.
func (t *Type) boxedLiteral() bool {
	return t.Kind == Option && (t.Elem.Kind == Option || t.Elem.Kind == Unit)
}

// widen maps every Go integer type to int64 or uint64, the forms that YAML,
// CBOR and msgpack decoders may produce for the same literal.
func widen(lit any) any {
	switch v := lit.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	}
	return lit
}

func literalUint(lit any) (uint64, error) {
	switch v := widen(lit).(type) {
	case int64:
		if v < 0 {
			return 0, strconv.ErrRange
		}
		return uint64(v), nil
	case uint64:
		return v, nil
	case string:
		return strconv.ParseUint(strings.TrimSpace(v), 0, 64)
	}
	return 0, strconv.ErrSyntax
}

func literalInt(lit any) (int64, error) {
	switch v := widen(lit).(type) {
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 0, 64)
	}
	return 0, strconv.ErrSyntax
}

func literalBig(lit any) (*big.Int, error) {
	switch v := widen(lit).(type) {
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case *big.Int:
		if v == nil {
			return nil, strconv.ErrSyntax
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 0)
		if !ok {
			return nil, strconv.ErrSyntax
		}
		return n, nil
	}
	return nil, strconv.ErrSyntax
}

func literalBytes(s string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return hex.DecodeString(rest)
	}
	return []byte(s), nil
}
