package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted             = errors.New(f("cpu halted"))
	ErrInputEmpty         = errors.New(f("Input buffer is empty"))
	ErrStringUnterminated = errors.New(f("string not terminated"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))
	ErrInputRange         = errors.New(f("input character does not fit in a word"))

	// Instruction decode errors
	ErrNotImplemented = errors.New(f("not implemented"))
	ErrOpcodeReserved = errors.New(f("reserved opcode"))
	ErrTrapVector     = errors.New(f("unknown trap vector"))
	ErrWordWidth      = errors.New(f("instruction must be 16 binary digits"))
)

// ErrInstruction annotates a runtime error with the word being executed.
type ErrInstruction uint16

func (ei ErrInstruction) Error() string {
	return f("bad instruction x%04X %v", uint16(ei), Disassemble(uint16(ei)))
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrLoad locates a LoadText error at a text line.
type ErrLoad struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrLoad) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrLoad) Unwrap() error {
	return err.Err
}
