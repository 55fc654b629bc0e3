package emulator

import (
	"errors"
	"strconv"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("x%04X %v", err.Pc, err.Err)
	}
	return f("line %v x%04X %v", strconv.Itoa(err.LineNo), err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrProbe reports a probe expression that could not be evaluated.
type ErrProbe struct {
	Expr string
	Err  error
}

func (err *ErrProbe) Error() string {
	return f("$(%v) %v", err.Expr, err.Err)
}

func (err *ErrProbe) Unwrap() error {
	return err.Err
}
