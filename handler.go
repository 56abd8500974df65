package codec

import "fmt"

// ErrorHandler decides what happens when a codec operation fails.
//
// Codec implementations call HandleError on every failure path and return
// its result unchanged. A handler either returns an error for the caller to
// propagate, or never returns at all.
type ErrorHandler interface {
	HandleError(err error) error
}

// ResultHandler returns every error to the caller.
type ResultHandler struct{}

var _ ErrorHandler = ResultHandler{}

func (ResultHandler) HandleError(err error) error { return err }

// ExitFunc terminates the current unit of execution. It must not return.
type ExitFunc[C any] func(ctx C, err error)

// ExitHandler passes failures to Exit together with Ctx. Operations driven
// by an ExitHandler return a nil error whenever they return at all.
type ExitHandler[C any] struct {
	Ctx  C
	Exit ExitFunc[C]
}

// Exit builds an ExitHandler.
func Exit[C any](ctx C, fn ExitFunc[C]) ExitHandler[C] {
	return ExitHandler[C]{Ctx: ctx, Exit: fn}
}

func (h ExitHandler[C]) HandleError(err error) error {
	h.Exit(h.Ctx, err)
	// A returning ExitFunc breaks the contract; unwind anyway so nothing
	// after the failure runs.
	panic(&Abort{Err: fmt.Errorf("%w: %w", ErrExitReturned, err)})
}

// Abort is the panic value used to unwind a unit of execution.
type Abort struct {
	Err error
}

func (a *Abort) Error() string { return "codec: aborted: " + a.Err.Error() }
func (a *Abort) Unwrap() error { return a.Err }

// Trap is an ExitFunc that unwinds with an *Abort carrying err.
func Trap[C any](_ C, err error) {
	panic(&Abort{Err: err})
}

// Catch runs fn and converts an *Abort unwinding into a returned error.
// Other panics propagate.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if a, ok := r.(*Abort); ok {
				err = a
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
