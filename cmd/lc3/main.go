// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/ezrec/lc3/asm"
	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/emulator"
	"github.com/ezrec/lc3/translate"
)

func main() {
	var compile string
	var binary string
	var address string
	var save bool
	var input string
	var output string
	var steps int
	var probes []string
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&binary, "b", "", "binary text file to load, instead of compiling")
	flag.StringVar(&address, "a", "x3000", "load address for -b")
	flag.BoolVar(&save, "s", false, "Print listing and symbols, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.IntVar(&steps, "n", 0, "Step limit, 0 for none")
	flag.Func("x", "Probe expression to print after the run (repeatable)", func(expr string) error {
		probes = append(probes, expr)
		return nil
	})
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "l", "", "Message language, default is the host locale")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.Use(lang)
	}

	prog := &asm.Program{}

	switch {
	case len(compile) != 0:
		// Compile a new instruction stream.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		prog, err = assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		// Load a pre-assembled binary listing.
		origin, err := parseAddress(address)
		if err != nil {
			log.Fatalf("-a %v: %v", address, err)
		}

		text, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		words, err := cpu.ParseText(string(text))
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		prog.Origin = origin
		for n, word := range words {
			prog.Cells = append(prog.Cells, asm.Cell{Address: origin + uint16(n), Word: word})
		}
	default:
		log.Fatalf("%v: one of -c or -b is required", os.Args[0])
	}

	if save {
		fmt.Println(prog.String())
		for label, addr := range prog.Symbols.Sorted() {
			fmt.Printf("; %v x%04X\n", label, addr)
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.MaxSteps = steps

	if input == "-" {
		// Interactive input would block the reset, as the whole tape is
		// read before execution starts.
		if term.IsTerminal(int(os.Stdin.Fd())) {
			log.Printf("%v: stdin is a terminal, tape input is empty", os.Args[0])
		} else {
			emu.Tape.Input = os.Stdin
		}
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		if verbose {
			log.Print(emu.Cpu.String())
		}
		log.Fatal(err)
	}

	for _, expr := range probes {
		value, err := emu.Eval(expr)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(os.Stderr, "%v = %v\n", expr, value)
	}
}

// parseAddress parses an 'x' hexadecimal or '#' decimal address.
func parseAddress(text string) (addr uint16, err error) {
	value, ok, err := asm.ParseImmediate(text)
	if err != nil {
		return
	}
	if !ok {
		var v64 uint64
		v64, err = strconv.ParseUint(text, 0, 16)
		if err != nil {
			return
		}
		value = int(v64)
	}
	if value < 0 || value > 0xffff {
		err = asm.ErrRange{Value: value, Min: 0, Max: 0xffff}
		return
	}

	addr = uint16(value)
	return
}
