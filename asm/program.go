package asm

import (
	"fmt"
	"iter"
	"strings"
)

// Cell is one assembled memory word and the source line it came from.
type Cell struct {
	Address uint16
	Word    uint16
	LineNo  int
}

// Binary returns the word as 16 binary digits.
func (cell Cell) Binary() string {
	return fmt.Sprintf("%016b", cell.Word)
}

// String returns the listing form "(ADDR) bits".
func (cell Cell) String() string {
	return fmt.Sprintf("(%X) %v", cell.Address, cell.Binary())
}

// Program is the output of the assembler.
type Program struct {
	Origin  uint16      // Address given by .ORIG.
	Cells   []Cell      // Memory cells in ascending address order.
	Symbols SymbolTable // Resolved labels.
}

// Debug finds the cell assembled at addr.
func (prog *Program) Debug(addr uint16) (cell Cell, ok bool) {
	if len(prog.Cells) == 0 {
		return
	}

	index := int(addr) - int(prog.Cells[0].Address)
	if index < 0 || index >= len(prog.Cells) {
		return
	}

	return prog.Cells[index], true
}

// Words returns the assembled words, starting at Origin.
func (prog *Program) Words() (words []uint16) {
	for _, word := range prog.Codes() {
		words = append(words, word)
	}
	return
}

// Codes iterates over the (address, word) pairs of the program.
func (prog *Program) Codes() iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, word uint16) bool) {
		for _, cell := range prog.Cells {
			if !yield(cell.Address, cell.Word) {
				return
			}
		}
	}
}

// String returns the program listing, one "(ADDR) bits" line per cell.
func (prog *Program) String() string {
	lines := make([]string, 0, len(prog.Cells))
	for _, cell := range prog.Cells {
		lines = append(lines, cell.String())
	}
	return strings.Join(lines, "\n")
}
