package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doLink(t *testing.T, program []string) (lines []Line, symbols SymbolTable, err error) {
	lines, err = Tokenize(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	symbols, err = Link(lines)
	return
}

func TestLink(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"        BR SKIP    ; forward reference",
		"MSG     .STRINGZ \"AB\"",
		"BUF     .BLKW 4",
		"A B     .FILL x1234",
		"SKIP",
		"        LEA R0, MSG",
		"        PUTS",
		"DONE    HALT",
		".END",
	}

	lines, symbols, err := doLink(t, program)
	assert.NoError(err)

	assert.Equal(SymbolTable{
		"MSG":  0x3001,
		"BUF":  0x3004,
		"A":    0x3008,
		"B":    0x3008,
		"SKIP": 0x3009,
		"DONE": 0x300b,
	}, symbols)

	placed := map[int]uint16{
		2: 0x3000,
		3: 0x3001,
		4: 0x3004,
		5: 0x3008,
		7: 0x3009,
		8: 0x300a,
		9: 0x300b,
	}
	for _, line := range lines {
		addr, ok := placed[line.LineNo]
		assert.Equal(ok, line.Placed, program[line.LineNo-1])
		if ok {
			assert.Equal(addr, line.Address, program[line.LineNo-1])
		}
	}
}

func TestLinkAfterEnd(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"HALT",
		".END",
		"HALT",
		"UNUSED UNUSED",
	}

	lines, symbols, err := doLink(t, program)
	assert.NoError(err)
	assert.Empty(symbols)
	assert.False(lines[3].Placed)
}

func TestLinkSorted(t *testing.T) {
	assert := assert.New(t)

	symbols := SymbolTable{"Z": 1, "B": 2, "A": 2, "C": 0}

	var names []string
	for name := range symbols.Sorted() {
		names = append(names, name)
	}
	assert.Equal([]string{"C", "Z", "A", "B"}, names)

	addr, err := symbols.Lookup("B")
	assert.NoError(err)
	assert.Equal(uint16(2), addr)

	_, err = symbols.Lookup("b")
	assert.Equal(ErrLabelMissing("b"), err)
}

func TestLinkErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name    string
		program []string
		lineno  int
		err     error
	}{
		{"label before origin", []string{"START", ".ORIG x3000", "HALT"}, 1, ErrOrigMissing},
		{"instruction before origin", []string{"HALT", ".ORIG x3000"}, 1, ErrOrigMissing},
		{"duplicate origin", []string{".ORIG x3000", "HALT", ".ORIG x4000"}, 3, ErrOrigDuplicate},
		{"origin without operand", []string{".ORIG"}, 1, ErrOrigInvalid},
		{"origin with two operands", []string{".ORIG x3000, x4000"}, 1, ErrOrigInvalid},
		{"origin not immediate", []string{".ORIG 3000"}, 1, ErrImmediateExpected("3000")},
		{"origin out of range", []string{".ORIG x10000"}, 1, ErrRange{Value: 0x10000, Min: 0, Max: 0xffff}},
		{"duplicate label", []string{".ORIG x3000", "A HALT", "A HALT"}, 3, ErrLabelDuplicate("A")},
		{"duplicate label same line", []string{".ORIG x3000", "A A HALT"}, 2, ErrLabelDuplicate("A")},
		{"duplicate label same address", []string{".ORIG x3000", "A", "A HALT"}, 3, ErrLabelDuplicate("A")},
		{"dangling label", []string{".ORIG x3000", "HALT", "TAIL"}, 3, ErrLabelDangling},
		{"dangling label at end", []string{".ORIG x3000", "HALT", "TAIL .END"}, 3, ErrLabelDangling},
		{"negative block", []string{".ORIG x3000", ".BLKW #-1"}, 2, ErrBlockInvalid},
		{"block without size", []string{".ORIG x3000", ".BLKW"}, 2, ErrBlockInvalid},
		{"string without literal", []string{".ORIG x3000", ".STRINGZ"}, 2, ErrStringInvalid},
		{"string not quoted", []string{".ORIG x3000", ".STRINGZ hello"}, 2, ErrStringInvalid},
		{"overflow", []string{".ORIG xFFFF", "HALT", "HALT"}, 3, ErrAddressOverflow},
		{"block overflow", []string{".ORIG xFFFE", ".BLKW 3"}, 2, ErrAddressOverflow},
	}

	for _, entry := range table {
		_, _, err := doLink(t, entry.program)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax ErrSyntax
		if assert.ErrorAs(err, &syntax, entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}
