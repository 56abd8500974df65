// Package call implements the call boundaries of a contract: endpoint
// arguments, endpoint results and the argument buffers of outgoing calls.
// Every slot on these boundaries holds one top-encoded value.
package call

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	codec "github.com/oy3o/sccodec"
)

// ErrWrongArgCount is reported when an endpoint receives more or fewer
// arguments than it declares.
var ErrWrongArgCount = errors.New("call: wrong number of arguments")

// Args hands out endpoint arguments in declared order.
type Args struct {
	raw  [][]byte
	next int
	h    codec.ErrorHandler
}

// NewArgs wraps the raw argument slots of a call. Failures go through h.
func NewArgs(raw [][]byte, h codec.ErrorHandler) *Args {
	return &Args{raw: raw, h: h}
}

func (a *Args) Len() int       { return len(a.raw) }
func (a *Args) Remaining() int { return len(a.raw) - a.next }

// CheckCount fails unless exactly n arguments were passed.
func (a *Args) CheckCount(n int) error {
	if len(a.raw) != n {
		return a.h.HandleError(fmt.Errorf("%w: expected %d, got %d", ErrWrongArgCount, n, len(a.raw)))
	}
	return nil
}

// Raw returns the next slot undecoded.
func (a *Args) Raw() ([]byte, error) {
	if a.next >= len(a.raw) {
		return nil, a.h.HandleError(fmt.Errorf("%w: missing argument %d", ErrWrongArgCount, a.next))
	}
	b := a.raw[a.next]
	a.next++
	return b, nil
}

// Done fails if any argument was left unread.
func (a *Args) Done() error {
	if a.next != len(a.raw) {
		return a.h.HandleError(fmt.Errorf("%w: %d unread", ErrWrongArgCount, len(a.raw)-a.next))
	}
	return nil
}

// Next top-decodes the next argument.
func Next[T any, PT codec.DecoderPtr[T]](a *Args) (T, error) {
	raw, err := a.Raw()
	if err != nil {
		var zero T
		return zero, err
	}
	return codec.DecodeTop[T, PT](raw, a.h)
}

// Results collects endpoint return values.
type Results struct {
	out [][]byte
	h   codec.ErrorHandler
}

func NewResults(h codec.ErrorHandler) *Results {
	return &Results{h: h}
}

// Finish appends the top encoding of v as one result slot.
func (r *Results) Finish(v codec.TopEncoder) error {
	b, err := codec.EncodeTop(v, r.h)
	if err != nil {
		return err
	}
	r.out = append(r.out, b)
	return nil
}

// Values returns the result slots in order.
func (r *Results) Values() [][]byte { return r.out }

// ArgBuffer assembles the arguments of an outgoing call.
type ArgBuffer struct {
	args [][]byte
}

// PushArg appends the top encoding of v as one slot.
func (b *ArgBuffer) PushArg(v codec.TopEncoder, h codec.ErrorHandler) error {
	p, err := codec.EncodeTop(v, h)
	if err != nil {
		return err
	}
	b.args = append(b.args, p)
	return nil
}

// PushRaw appends p as one slot as is.
func (b *ArgBuffer) PushRaw(p []byte) {
	b.args = append(b.args, append([]byte(nil), p...))
}

func (b *ArgBuffer) Len() int { return len(b.args) }

// Args returns the slots in order.
func (b *ArgBuffer) Args() [][]byte { return b.args }

// Data renders a call of function with these arguments in transaction data
// form: the function name and each slot in hex, joined by '@'.
func (b *ArgBuffer) Data(function string) string {
	var sb strings.Builder
	sb.WriteString(function)
	for _, a := range b.args {
		sb.WriteByte('@')
		sb.WriteString(hex.EncodeToString(a))
	}
	return sb.String()
}

// ParseData splits transaction data into a function name and argument slots.
func ParseData(data string) (string, [][]byte, error) {
	parts := strings.Split(data, "@")
	args := make([][]byte, 0, len(parts)-1)
	for _, p := range parts[1:] {
		b, err := hex.DecodeString(p)
		if err != nil {
			return "", nil, fmt.Errorf("call: argument %q: %w", p, err)
		}
		args = append(args, b)
	}
	return parts[0], args, nil
}
