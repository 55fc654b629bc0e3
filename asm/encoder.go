package asm

import (
	"fmt"

	"github.com/ezrec/lc3/isa"
)

// Encoder packs bit fields into one instruction word, most significant
// field first. It is the mirror image of cpu.Decoder.
type Encoder struct {
	word uint16
	pos  int
}

// Field appends the low bits of value as the next field.
func (enc *Encoder) Field(value uint16, bits int) {
	if enc.pos+bits > isa.WORD {
		panic(fmt.Sprintf("encoder: %d+%d bits overflow word", enc.pos, bits))
	}
	mask := uint16((1 << bits) - 1)
	enc.pos += bits
	enc.word |= (value & mask) << (isa.WORD - enc.pos)
}

// Opcode appends the 4-bit opcode field.
func (enc *Encoder) Opcode(op isa.Opcode) {
	enc.Field(uint16(op), isa.OPCODE)
}

// Word returns the packed word. Every bit must have been accounted for.
func (enc *Encoder) Word() uint16 {
	if enc.pos != isa.WORD {
		panic(fmt.Sprintf("encoder: %d of %d bits packed", enc.pos, isa.WORD))
	}
	return enc.word
}
