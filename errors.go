package codec

import (
	"errors"
	"fmt"
)

// DecodeError is the closed set of decoding failures. Compare with errors.Is
// against the package variables below; extra context is added by wrapping.
type DecodeError struct{ msg string }

func (e *DecodeError) Error() string { return e.msg }

// EncodeError is the closed set of encoding failures.
type EncodeError struct{ msg string }

func (e *EncodeError) Error() string { return e.msg }

var (
	// ErrInputTooShort indicates the input ended before a self-delimiting value was complete.
	ErrInputTooShort = &DecodeError{"codec: input too short"}

	// ErrInputTooLong indicates bytes were left over after a complete top-level value.
	ErrInputTooLong = &DecodeError{"codec: input too long"}

	// ErrInvalidValue indicates a discriminant, tag, length or primitive outside its valid range.
	ErrInvalidValue = &DecodeError{"codec: invalid value"}

	// ErrSinkRejected indicates the output refused a write, e.g. its quota was exhausted.
	ErrSinkRejected = &EncodeError{"codec: sink rejected write"}

	// ErrValueTooLarge indicates a length that does not fit the 32-bit length prefix.
	ErrValueTooLarge = &EncodeError{"codec: value too large for length prefix"}
)

var (
	// ErrNilIO indicates that NewWriter was called with a nil io.Writer.
	ErrNilIO = errors.New("codec: NewWriter called with a nil io.Writer")

	// ErrExitReturned is wrapped in the Abort raised when an ExitFunc returns to its caller.
	ErrExitReturned = errors.New("codec: exit function returned")
)

// sinkError classifies a failure reported by an output as ErrSinkRejected.
func sinkError(err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSinkRejected, err)
}

func tooShort(need, offset, have int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInputTooShort, need, offset, have)
}

func tooLong(extra int) error {
	return fmt.Errorf("%w: %d trailing bytes", ErrInputTooLong, extra)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...)
}
