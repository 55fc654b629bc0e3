package cpu

import (
	"fmt"

	"github.com/ezrec/lc3/isa"
)

// Disassemble renders an instruction word in assembler syntax.
// Offsets are shown as decimal immediates relative to the next address.
func Disassemble(word uint16) (text string) {
	reg := func(dec *Decoder) string {
		return fmt.Sprintf("R%d", dec.Register())
	}
	imm := func(dec *Decoder, bits int) string {
		return fmt.Sprintf("#%d", dec.Signed(bits))
	}

	dec := NewDecoder(word)
	op := dec.Opcode.String()

	switch dec.Opcode {
	case isa.OP_ADD, isa.OP_AND:
		dr, sr := reg(dec), reg(dec)
		if dec.Flag() {
			text = fmt.Sprintf("%v %v, %v, %v", op, dr, sr, imm(dec, isa.IMM5))
		} else {
			dec.Eat(2)
			text = fmt.Sprintf("%v %v, %v, %v", op, dr, sr, reg(dec))
		}
	case isa.OP_NOT:
		text = fmt.Sprintf("%v %v, %v", op, reg(dec), reg(dec))
	case isa.OP_BR:
		cond := ""
		for _, name := range "nzp" {
			if dec.Flag() {
				cond += string(name)
			}
		}
		if cond == "" {
			text = "NOP"
			break
		}
		text = fmt.Sprintf("%v%v %v", op, cond, imm(dec, isa.PCOFFSET9))
	case isa.OP_JMP:
		dec.Eat(3)
		base := dec.Register()
		if base == isa.REG_LINK {
			text = "RET"
		} else {
			text = fmt.Sprintf("%v R%d", op, base)
		}
	case isa.OP_JSR:
		if dec.Flag() {
			text = fmt.Sprintf("%v %v", op, imm(dec, isa.PCOFFSET11))
		} else {
			dec.Eat(2)
			text = fmt.Sprintf("JSRR %v", reg(dec))
		}
	case isa.OP_LD, isa.OP_LDI, isa.OP_LEA, isa.OP_ST, isa.OP_STI:
		text = fmt.Sprintf("%v %v, %v", op, reg(dec), imm(dec, isa.PCOFFSET9))
	case isa.OP_LDR, isa.OP_STR:
		text = fmt.Sprintf("%v %v, %v, %v", op, reg(dec), reg(dec), imm(dec, isa.OFFSET6))
	case isa.OP_RTI, isa.OP_RES:
		text = op
	case isa.OP_TRAP:
		dec.Eat(4)
		vector := isa.TrapVector(dec.Unsigned(isa.TRAPVECT8))
		if vector >= isa.TRAP_GETC && vector <= isa.TRAP_HALT {
			text = vector.String()
		} else {
			text = fmt.Sprintf("%v x%02X", op, int(vector))
		}
	}

	return
}
