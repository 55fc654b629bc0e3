// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled LC-3 programs against a tape, mapping
// execution back to source lines.
package emulator

import (
	"log"

	"github.com/ezrec/lc3/asm"
	"github.com/ezrec/lc3/cpu"
	"github.com/ezrec/lc3/io"
)

// Emulator state. CPU + program listing + tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently running program listing.

	Tape io.Tape // Console tape. Input is read at Reset, output is written per tick.

	MaxSteps int // If non-zero, the number of ticks allowed after a Reset.

	sent int // Count of Cpu.Output runes already written to the tape.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &asm.Program{},
	}

	return
}

// Reset the emulator state.
// - Resets the CPU, and loads the program at its origin.
// - Rewinds the tape, and queues all of its input for the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.sent = 0

	err = emu.Cpu.Load(emu.Program.Origin, emu.Program.Words())
	if err != nil {
		return
	}

	emu.Tape.Rewind()
	for value := range io.ReceiveRunes(&emu.Tape) {
		emu.Cpu.Input = append(emu.Cpu.Input, value)
	}
	err = emu.Tape.Err
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, pc x%04X, %d input characters", emu.Cpu.Pc, len(emu.Cpu.Input))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the instruction at the PC,
// or 0 if the PC is outside the program.
func (emu *Emulator) LineNo() int {
	cell, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return cell.LineNo
}

// flush writes the CPU output not yet sent to the tape.
func (emu *Emulator) flush() (err error) {
	if emu.Tape.Output == nil {
		return
	}

	err = io.SendString(&emu.Tape, emu.Cpu.Output[emu.sent:])
	if err != nil {
		return
	}
	emu.sent = len(emu.Cpu.Output)

	return
}

// Tick performs a single instruction step of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxSteps > 0 && emu.Cpu.Ticks >= emu.MaxSteps {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	err = emu.flush()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	if done && emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}

// Run ticks the emulator until the CPU halts.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
