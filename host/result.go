package host

import (
	"errors"
	"fmt"

	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/call"
)

// Status is the return code of an execution.
type Status int

const (
	StatusOK              Status = 0
	StatusUserError       Status = 4
	StatusExecutionFailed Status = 10
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUserError:
		return "user error"
	case StatusExecutionFailed:
		return "execution failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome of Execute.
type Result struct {
	Status  Status
	Message string
	Results [][]byte
}

func (r Result) OK() bool { return r.Status == StatusOK }

// UserError is raised by SignalError.
type UserError struct{ Message string }

func (e *UserError) Error() string { return e.Message }

// statusOf classifies the error that aborted an endpoint. Failures caused by
// the caller's input are user errors; everything else is an execution failure.
func statusOf(err error) Status {
	var (
		ue  *UserError
		dec *codec.DecodeError
	)
	switch {
	case errors.As(err, &ue), errors.As(err, &dec), errors.Is(err, call.ErrWrongArgCount):
		return StatusUserError
	}
	return StatusExecutionFailed
}

// messageOf strips the abort wrapper from err.
func messageOf(err error) string {
	var a *codec.Abort
	if errors.As(err, &a) {
		err = a.Err
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
