package cpu

import (
	"fmt"
	"strconv"

	"github.com/ezrec/lc3/isa"
)

// Decoder consumes the bit fields of one instruction word, most
// significant field first. It is the mirror image of asm.Encoder.
type Decoder struct {
	Word   uint16     // Instruction word being decoded.
	Opcode isa.Opcode // Leading 4 bits of Word.

	pos int
}

// NewDecoder starts decoding word, consuming the opcode field.
func NewDecoder(word uint16) (dec *Decoder) {
	dec = &Decoder{Word: word}
	dec.Opcode = isa.Opcode(dec.Eat(isa.OPCODE))
	return
}

// Eat consumes the next bits of the word, returning them unsigned.
func (dec *Decoder) Eat(bits int) (value uint16) {
	if dec.pos+bits > isa.WORD {
		panic(fmt.Sprintf("decoder: %d+%d bits overrun word", dec.pos, bits))
	}
	dec.pos += bits
	value = (dec.Word >> (isa.WORD - dec.pos)) & uint16((1<<bits)-1)
	return
}

// Unsigned consumes an unsigned field.
func (dec *Decoder) Unsigned(bits int) int {
	return int(dec.Eat(bits))
}

// Signed consumes a two's complement field, sign extending it.
func (dec *Decoder) Signed(bits int) int {
	value := int(dec.Eat(bits))
	if value&(1<<(bits-1)) != 0 {
		value -= 1 << bits
	}
	return value
}

// Register consumes a register index field.
func (dec *Decoder) Register() int {
	return int(dec.Eat(isa.REG))
}

// Flag consumes a single bit.
func (dec *Decoder) Flag() bool {
	return dec.Eat(1) == 1
}

// ParseWord converts a text word of exactly 16 binary digits.
func ParseWord(text string) (word uint16, err error) {
	if len(text) != isa.WORD {
		err = ErrWordWidth
		return
	}

	value, err := strconv.ParseUint(text, 2, isa.WORD)
	if err != nil {
		err = ErrWordWidth
		return
	}

	word = uint16(value)
	return
}
