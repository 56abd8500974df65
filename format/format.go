// Package format adapts the wire codec and general purpose serializers to
// one small interface so values can be moved between them.
package format

import (
	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/schema"
)

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Top is a Codec for the top encoding of a static codec type.
// The zero value is ready to use.
type Top[V any, PV codec.CodecPtr[V]] struct{}

var _ Codec[codec.U32] = Top[codec.U32, *codec.U32]{}

func (Top[V, PV]) Encode(v V) ([]byte, error) { return codec.Marshal(PV(&v)) }
func (Top[V, PV]) Decode(b []byte) (V, error) {
	return codec.DecodeTop[V, PV](b, codec.ResultHandler{})
}

// Nested is a Codec for the nested encoding of a static codec type. Decode
// rejects trailing bytes.
type Nested[V any, PV codec.CodecPtr[V]] struct{}

func (Nested[V, PV]) Encode(v V) ([]byte, error) { return codec.MarshalNested(PV(&v)) }
func (Nested[V, PV]) Decode(b []byte) (V, error) {
	var v V
	err := codec.DecodeTopFromNested(PV(&v), b, codec.ResultHandler{})
	return v, err
}

// Wire is a Codec for dynamic values of a schema type in top encoding.
type Wire struct {
	T *schema.Type
}

var _ Codec[any] = Wire{}

func (c Wire) Encode(v any) ([]byte, error) { return c.T.EncodeTop(v, codec.ResultHandler{}) }
func (c Wire) Decode(b []byte) (any, error) { return c.T.DecodeTop(b, codec.ResultHandler{}) }

// WireNested is Wire over the nested encoding. Decode rejects trailing bytes.
type WireNested struct {
	T *schema.Type
}

func (c WireNested) Encode(v any) ([]byte, error) { return c.T.EncodeNested(v, codec.ResultHandler{}) }
func (c WireNested) Decode(b []byte) (any, error) {
	v := schema.Value{T: c.T}
	if err := codec.DecodeTopFromNested(&v, b, codec.ResultHandler{}); err != nil {
		return nil, err
	}
	return v.V, nil
}

// Literal carries dynamic values of T through Inner in their literal form,
// see schema.Type.ToLiteral.
type Literal struct {
	T     *schema.Type
	Inner Codec[any]
}

var _ Codec[any] = Literal{}

func (c Literal) Encode(v any) ([]byte, error) { return c.Inner.Encode(c.T.ToLiteral(v)) }
func (c Literal) Decode(b []byte) (any, error) {
	lit, err := c.Inner.Decode(b)
	if err != nil {
		return nil, err
	}
	return c.T.FromLiteral(lit)
}

// Transcode decodes b with from and re-encodes the value with to.
func Transcode[V any](b []byte, from, to Codec[V]) ([]byte, error) {
	v, err := from.Decode(b)
	if err != nil {
		return nil, err
	}
	return to.Encode(v)
}
