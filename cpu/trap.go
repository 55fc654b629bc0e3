package cpu

import (
	"log"

	"github.com/ezrec/lc3/isa"
)

// Trap runs the service routine for a trap vector.
// No CPU state is modified if an error is returned.
func (cpu *Cpu) Trap(vector isa.TrapVector) (err error) {
	switch vector {
	case isa.TRAP_GETC, isa.TRAP_IN:
		if len(cpu.Input) == 0 {
			err = ErrInputEmpty
			return
		}
		if cpu.Input[0] > 0xffff {
			err = ErrInputRange
			return
		}
		cpu.Register[0] = uint16(cpu.Input[0])
		cpu.Input = cpu.Input[1:]
	case isa.TRAP_OUT:
		cpu.Output = append(cpu.Output, rune(cpu.Register[0]&0xff))
	case isa.TRAP_PUTS, isa.TRAP_PUTSP:
		var text []rune
		text, err = cpu.readString(cpu.Register[0], vector == isa.TRAP_PUTSP)
		if err != nil {
			return
		}
		cpu.Output = append(cpu.Output, text...)
	case isa.TRAP_HALT:
		cpu.Halted = true
	default:
		err = ErrTrapVector
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: trap %v", vector)
	}

	return
}

// readString collects the characters of a zero terminated string at addr.
// A packed string holds two 8-bit characters per cell, low byte first, and
// ends at the first zero byte.
func (cpu *Cpu) readString(addr uint16, packed bool) (text []rune, err error) {
	for range isa.MEMORY_SIZE {
		cell := cpu.Memory[addr]
		addr++

		if !packed {
			if cell == 0 {
				return
			}
			text = append(text, rune(cell))
			continue
		}

		for _, ch := range [2]uint16{cell & 0xff, cell >> 8} {
			if ch == 0 {
				return
			}
			text = append(text, rune(ch))
		}
	}

	err = ErrStringUnterminated
	return
}
