package format

import "gopkg.in/yaml.v3"

// YAML is a Codec over gopkg.in/yaml.v3. The zero value is ready to use.
// Combined with Literal it gives the human-readable form of wire values.
type YAML[V any] struct{}

var _ Codec[any] = YAML[any]{}

func (YAML[V]) Encode(v V) ([]byte, error) { return yaml.Marshal(v) }
func (YAML[V]) Decode(b []byte) (V, error) {
	var v V
	err := yaml.Unmarshal(b, &v)
	return v, err
}
