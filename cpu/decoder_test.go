package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lc3/asm"
	"github.com/ezrec/lc3/isa"
)

func TestDecoder(t *testing.T) {
	assert := assert.New(t)

	// ADD R1, R2, #-1
	dec := NewDecoder(0x12bf)
	assert.Equal(isa.OP_ADD, dec.Opcode)
	assert.Equal(1, dec.Register())
	assert.Equal(2, dec.Register())
	assert.True(dec.Flag())
	assert.Equal(-1, dec.Signed(isa.IMM5))
	assert.Panics(func() { dec.Eat(1) })

	dec = NewDecoder(0xf0ff)
	assert.Equal(isa.OP_TRAP, dec.Opcode)
	assert.Equal(uint16(0), dec.Eat(4))
	assert.Equal(255, dec.Unsigned(isa.TRAPVECT8))
}

func TestDecoderSignedRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, bits := range []int{isa.IMM5, isa.OFFSET6, isa.PCOFFSET9, isa.PCOFFSET11} {
		min, max := isa.SignedRange(bits)
		for value := min; value <= max; value++ {
			enc := &asm.Encoder{}
			enc.Opcode(isa.OP_BR)
			enc.Field(uint16(value), bits)
			enc.Field(0, isa.WORD-isa.OPCODE-bits)

			dec := NewDecoder(enc.Word())
			assert.Equal(value, dec.Signed(bits), "bits %d", bits)
		}
	}
}

func TestParseWord(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		word uint16
		err  error
	}{
		{"0000000000000000", 0x0000, nil},
		{"1111000000100101", 0xf025, nil},
		{"1111111111111111", 0xffff, nil},
		{"111100000010010", 0, ErrWordWidth},
		{"11110000001001011", 0, ErrWordWidth},
		{"111100000010010x", 0, ErrWordWidth},
		{"+111000000100101", 0, ErrWordWidth},
		{"", 0, ErrWordWidth},
	}

	for _, entry := range table {
		word, err := ParseWord(entry.text)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.text)
			continue
		}
		assert.NoError(err, entry.text)
		assert.Equal(entry.word, word, entry.text)
	}
}
