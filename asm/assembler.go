// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"
	"log"
	"strings"
)

// Assembler is a two pass assembler for LC-3 source.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Lines   []Line      // Tokenized lines of the last Parse.
	Symbols SymbolTable // Symbols of the last Parse.
}

// Parse parses an input stream into a Program.
// Assembly is all-or-nothing: on error no Program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Lines = nil
	asm.Symbols = nil

	asm.Lines, err = Tokenize(input)
	if err != nil {
		return
	}

	if asm.Verbose {
		for _, line := range asm.Lines {
			if len(line.Labels) > 0 || len(line.Instruction) > 0 {
				log.Printf("asm: %v: %v %v", line.LineNo, line.Labels, line.Instruction)
			}
		}
	}

	asm.Symbols, err = Link(asm.Lines)
	if err != nil {
		return
	}

	if asm.Verbose {
		for label, addr := range asm.Symbols.Sorted() {
			log.Printf("asm: symbol %v = x%04X", label, addr)
		}
	}

	prog, err = Generate(asm.Lines, asm.Symbols)
	if err != nil {
		return
	}

	if asm.Verbose {
		for _, cell := range prog.Cells {
			log.Printf("asm: %v: %v", cell.LineNo, cell)
		}
	}

	return
}

// Assemble assembles source text.
func Assemble(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}
