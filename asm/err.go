package asm

import (
	"errors"
	"strconv"

	"github.com/ezrec/lc3/translate"
)

var f = translate.From

var (
	// Lexical errors
	ErrStringUnterminated = errors.New(f("string not closed"))
	ErrStringMultiple     = errors.New(f("more than one string literal"))
	ErrEscapeDangling     = errors.New(f("escape character at end of line"))

	// Symbol errors
	ErrOrigMissing     = errors.New(f("no .ORIG directive found"))
	ErrOrigDuplicate   = errors.New(f("duplicate .ORIG directive"))
	ErrOrigInvalid     = errors.New(f("invalid .ORIG directive"))
	ErrLabelDangling   = errors.New(f("expected instruction after label"))
	ErrAddressOverflow = errors.New(f("program exceeds memory"))

	// Encoding errors
	ErrBlockInvalid  = errors.New(f("invalid .BLKW directive"))
	ErrStringInvalid = errors.New(f("invalid .STRINGZ directive"))
	ErrFillInvalid   = errors.New(f("invalid .FILL directive"))
)

// ErrLabelDuplicate reports a label declared more than once.
type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("duplicate label: %v", string(err))
}

// ErrLabelMissing reports a reference to an undeclared label.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("symbol not found: %v", string(err))
}

type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("invalid register: %v", string(err))
}

type ErrRegisterExpected string

func (err ErrRegisterExpected) Error() string {
	return f("expect register, actual: %v", string(err))
}

type ErrImmediateInvalid string

func (err ErrImmediateInvalid) Error() string {
	return f("invalid immediate: %v", string(err))
}

type ErrImmediateExpected string

func (err ErrImmediateExpected) Error() string {
	return f("invalid operand: %v, expected immediate", string(err))
}

// ErrInstructionInvalid reports an unknown mnemonic.
type ErrInstructionInvalid string

func (err ErrInstructionInvalid) Error() string {
	return f("invalid instruction: %v", string(err))
}

type ErrDirectiveInvalid string

func (err ErrDirectiveInvalid) Error() string {
	return f("unknown directive: %v", string(err))
}

// ErrOperandCount reports an instruction with the wrong number of operands.
type ErrOperandCount struct {
	Want int
	Have int
}

func (err ErrOperandCount) Error() string {
	return f("invalid instruction: expect %v operands, actual: %v", strconv.Itoa(err.Want), strconv.Itoa(err.Have))
}

// ErrRange reports a value that does not fit its bit field.
type ErrRange struct {
	Value int
	Min   int
	Max   int
}

func (err ErrRange) Error() string {
	return f("value out of range: %v (min: %v, max: %v)",
		strconv.Itoa(err.Value), strconv.Itoa(err.Min), strconv.Itoa(err.Max))
}

// ErrSyntax locates an assembly error at a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	// Line numbers are never grouped by the locale printer.
	return f("Error at line %v: %v", strconv.Itoa(err.LineNo), err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
