package asm

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/ezrec/lc3/isa"
)

// SymbolTable maps labels to their absolute addresses.
type SymbolTable map[string]uint16

// Lookup returns the address bound to label.
func (st SymbolTable) Lookup(label string) (addr uint16, err error) {
	addr, ok := st[label]
	if !ok {
		err = ErrLabelMissing(label)
	}
	return
}

// Sorted iterates over the symbols in address order, then name order.
func (st SymbolTable) Sorted() iter.Seq2[string, uint16] {
	names := slices.SortedFunc(maps.Keys(st), func(a, b string) int {
		if st[a] != st[b] {
			return cmp.Compare(st[a], st[b])
		}
		return cmp.Compare(a, b)
	})

	return func(yield func(string, uint16) bool) {
		for _, name := range names {
			if !yield(name, st[name]) {
				return
			}
		}
	}
}

// stringOperand decodes the quoted operand of a .STRINGZ directive.
func stringOperand(line *Line) (str string, err error) {
	operands := line.Operands()
	if len(operands) != 1 {
		err = ErrStringInvalid
		return
	}
	str, err = strconv.Unquote(operands[0])
	if err != nil {
		err = ErrStringInvalid
	}
	return
}

// size returns the number of memory cells a placed line occupies.
func size(line *Line) (cells int, err error) {
	switch line.Op() {
	case ".BLKW":
		operands := line.Operands()
		if len(operands) != 1 {
			err = ErrBlockInvalid
			return
		}
		cells, err = parseCount(operands[0])
	case ".STRINGZ":
		var str string
		str, err = stringOperand(line)
		if err != nil {
			return
		}
		cells = utf8.RuneCountInString(str) + 1
	default:
		cells = 1
	}
	return
}

// Link walks the lines once, binding every label to the address of the
// instruction it precedes and recording each placed line's address.
func Link(lines []Line) (symbols SymbolTable, err error) {
	symbols = make(SymbolTable)

	var address int
	var placed bool
	var dangling *Line

	var line *Line
	defer func() {
		if err != nil && line != nil {
			err = ErrSyntax{LineNo: line.LineNo, Line: line.Source, Err: err}
		}
	}()

	for n := range lines {
		line = &lines[n]

		for _, label := range line.Labels {
			if !placed {
				err = ErrOrigMissing
				return
			}
			_, ok := symbols[label]
			if ok {
				err = ErrLabelDuplicate(label)
				return
			}
			symbols[label] = uint16(address)
		}
		if len(line.Labels) > 0 {
			dangling = line
		}

		switch line.Op() {
		case "":
			continue
		case ".ORIG":
			if placed {
				err = ErrOrigDuplicate
				return
			}
			operands := line.Operands()
			if len(operands) != 1 {
				err = ErrOrigInvalid
				return
			}
			var origin int
			origin, err = mustImmediate(operands[0])
			if err != nil {
				return
			}
			if origin < 0 || origin >= isa.MEMORY_SIZE {
				err = ErrRange{Value: origin, Min: 0, Max: isa.MEMORY_SIZE - 1}
				return
			}
			address = origin
			placed = true
			continue
		}

		if !placed {
			err = ErrOrigMissing
			return
		}

		if line.Op() == ".END" {
			break
		}

		var cells int
		cells, err = size(line)
		if err != nil {
			return
		}

		if address >= isa.MEMORY_SIZE || address+cells > isa.MEMORY_SIZE {
			err = ErrAddressOverflow
			return
		}

		line.Address = uint16(address)
		line.Placed = true
		address += cells
		dangling = nil
	}

	if dangling != nil {
		line = dangling
		err = ErrLabelDangling
		return
	}

	line = nil
	return
}
