package asm

import (
	"strings"

	"github.com/ezrec/lc3/isa"
)

// genContext gives an encoding rule access to the operands of one line.
type genContext struct {
	line    *Line
	symbols SymbolTable
	enc     Encoder
}

// operands returns the operands, requiring exactly count of them.
func (ctx *genContext) operands(count int) (operands []string, err error) {
	operands = ctx.line.Operands()
	if len(operands) != count {
		err = ErrOperandCount{Want: count, Have: len(operands)}
	}
	return
}

// field range checks value and packs it as a two's complement field.
func (ctx *genContext) field(value int, bits int, unsigned bool) (err error) {
	var lo, hi int
	if unsigned {
		lo, hi = isa.UnsignedRange(bits)
	} else {
		lo, hi = isa.SignedRange(bits)
	}
	if value < lo || value > hi {
		err = ErrRange{Value: value, Min: lo, Max: hi}
		return
	}
	ctx.enc.Field(uint16(value), bits)
	return
}

// register packs a register operand.
func (ctx *genContext) register(word string) (err error) {
	reg, ok, err := ParseRegister(word)
	if err != nil {
		return
	}
	if !ok {
		err = ErrRegisterExpected(word)
		return
	}
	ctx.enc.Field(uint16(reg), isa.REG)
	return
}

// immediate packs a literal, or a label as an offset from the next address.
func (ctx *genContext) immediate(word string, bits int, unsigned bool) (err error) {
	value, ok, err := ParseImmediate(word)
	if err != nil {
		return
	}
	if !ok {
		var target uint16
		target, err = ctx.symbols.Lookup(word)
		if err != nil {
			return
		}
		value = int(target) - (int(ctx.line.Address) + 1)
	}
	return ctx.field(value, bits, unsigned)
}

// fillValue returns the word emitted by .FILL: a literal, or the absolute
// address of a label.
func (ctx *genContext) fillValue() (word uint16, err error) {
	operands, err := ctx.operands(1)
	if err != nil {
		return
	}
	value, ok, err := ParseImmediate(operands[0])
	if err != nil {
		return
	}
	if !ok {
		if _, isReg, _ := ParseRegister(operands[0]); isReg {
			err = ErrFillInvalid
			return
		}
		return ctx.symbols.Lookup(operands[0])
	}
	lo, _ := isa.SignedRange(isa.WORD)
	_, hi := isa.UnsignedRange(isa.WORD)
	if value < lo || value > hi {
		err = ErrRange{Value: value, Min: lo, Max: hi}
		return
	}
	word = uint16(value)
	return
}

// directive emits the cells of a data directive. done is set by .END.
func (ctx *genContext) directive(op string) (cells []Cell, done bool, err error) {
	line := ctx.line
	cell := func(offset int, word uint16) Cell {
		return Cell{Address: line.Address + uint16(offset), Word: word, LineNo: line.LineNo}
	}

	switch op {
	case ".ORIG":
	case ".END":
		done = true
	case ".FILL":
		var word uint16
		word, err = ctx.fillValue()
		if err != nil {
			return
		}
		cells = append(cells, cell(0, word))
	case ".BLKW":
		var count int
		count, err = size(line)
		if err != nil {
			return
		}
		for n := range count {
			cells = append(cells, cell(n, 0))
		}
	case ".STRINGZ":
		var str string
		str, err = stringOperand(line)
		if err != nil {
			return
		}
		_, hi := isa.UnsignedRange(isa.WORD)
		n := 0
		for _, ch := range str {
			if int(ch) > hi {
				err = ErrRange{Value: int(ch), Min: 0, Max: hi}
				return
			}
			cells = append(cells, cell(n, uint16(ch)))
			n++
		}
		cells = append(cells, cell(n, 0))
	default:
		err = ErrDirectiveInvalid(op)
	}

	return
}

// Generate encodes every linked line into memory cells.
func Generate(lines []Line, symbols SymbolTable) (prog *Program, err error) {
	var line *Line
	defer func() {
		if err != nil {
			prog = nil
			if line != nil {
				err = ErrSyntax{LineNo: line.LineNo, Line: line.Source, Err: err}
			}
		}
	}()

	prog = &Program{Symbols: symbols}

	for n := range lines {
		line = &lines[n]

		op := line.Op()
		if op == "" {
			continue
		}

		ctx := &genContext{line: line, symbols: symbols}

		if op == ".ORIG" {
			var operands []string
			operands, err = ctx.operands(1)
			if err != nil {
				return
			}
			var origin int
			origin, err = mustImmediate(operands[0])
			if err != nil {
				return
			}
			prog.Origin = uint16(origin)
			continue
		}

		if !line.Placed && op != ".END" {
			err = ErrOrigMissing
			return
		}

		mnemonic, ok := mnemonicMap[op]
		switch {
		case ok:
			ctx.enc.Opcode(mnemonic.Opcode)
			err = mnemonic.Encode(ctx)
			if err != nil {
				return
			}
			prog.Cells = append(prog.Cells, Cell{Address: line.Address, Word: ctx.enc.Word(), LineNo: line.LineNo})
		case strings.HasPrefix(op, "."):
			var cells []Cell
			var done bool
			cells, done, err = ctx.directive(op)
			if err != nil {
				return
			}
			if done {
				line = nil
				return
			}
			prog.Cells = append(prog.Cells, cells...)
		default:
			err = ErrInstructionInvalid(line.Instruction[0])
			return
		}
	}

	line = nil
	return
}
