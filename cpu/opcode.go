package cpu

import (
	"errors"

	"github.com/ezrec/lc3/isa"
)

// setCC sets the condition codes from a result.
func (cpu *Cpu) setCC(value uint16) {
	cpu.Cond = condOf(value)
}

// load writes a register and sets the condition codes from it.
func (cpu *Cpu) load(dr int, value uint16) {
	cpu.Register[dr] = value
	cpu.setCC(value)
}

// Execute executes a single instruction word as if it had been fetched
// from the PC. No CPU state is modified if an error is returned.
func (cpu *Cpu) Execute(word uint16) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(word), err)
		}
	}()

	next_pc := cpu.Pc + 1

	// pcRelative consumes a PC offset field, returning the effective address.
	pcRelative := func(dec *Decoder, bits int) uint16 {
		return next_pc + uint16(dec.Signed(bits))
	}

	// baseOffset consumes a base register and 6-bit offset.
	baseOffset := func(dec *Decoder) uint16 {
		base := cpu.Register[dec.Register()]
		return base + uint16(dec.Signed(isa.OFFSET6))
	}

	dec := NewDecoder(word)
	switch dec.Opcode {
	case isa.OP_ADD, isa.OP_AND:
		dr := dec.Register()
		a := cpu.Register[dec.Register()]
		var b uint16
		if dec.Flag() {
			b = uint16(dec.Signed(isa.IMM5))
		} else {
			dec.Eat(2)
			b = cpu.Register[dec.Register()]
		}
		if dec.Opcode == isa.OP_ADD {
			cpu.load(dr, a+b)
		} else {
			cpu.load(dr, a&b)
		}
	case isa.OP_NOT:
		dr := dec.Register()
		sr := dec.Register()
		dec.Eat(6)
		cpu.load(dr, ^cpu.Register[sr])
	case isa.OP_BR:
		n, z, p := dec.Flag(), dec.Flag(), dec.Flag()
		target := pcRelative(dec, isa.PCOFFSET9)
		if (n && cpu.Cond.N) || (z && cpu.Cond.Z) || (p && cpu.Cond.P) {
			next_pc = target
		}
	case isa.OP_JMP:
		dec.Eat(3)
		base := dec.Register()
		dec.Eat(6)
		next_pc = cpu.Register[base]
	case isa.OP_JSR:
		link := next_pc
		if dec.Flag() {
			next_pc = pcRelative(dec, isa.PCOFFSET11)
		} else {
			dec.Eat(2)
			next_pc = cpu.Register[dec.Register()]
			dec.Eat(6)
		}
		cpu.Register[isa.REG_LINK] = link
	case isa.OP_LD:
		dr := dec.Register()
		cpu.load(dr, cpu.Memory[pcRelative(dec, isa.PCOFFSET9)])
	case isa.OP_LDI:
		dr := dec.Register()
		cpu.load(dr, cpu.Memory[cpu.Memory[pcRelative(dec, isa.PCOFFSET9)]])
	case isa.OP_LDR:
		dr := dec.Register()
		cpu.load(dr, cpu.Memory[baseOffset(dec)])
	case isa.OP_LEA:
		dr := dec.Register()
		cpu.Register[dr] = pcRelative(dec, isa.PCOFFSET9)
	case isa.OP_ST:
		sr := dec.Register()
		cpu.Memory[pcRelative(dec, isa.PCOFFSET9)] = cpu.Register[sr]
	case isa.OP_STI:
		sr := dec.Register()
		cpu.Memory[cpu.Memory[pcRelative(dec, isa.PCOFFSET9)]] = cpu.Register[sr]
	case isa.OP_STR:
		sr := dec.Register()
		cpu.Memory[baseOffset(dec)] = cpu.Register[sr]
	case isa.OP_RTI:
		err = ErrNotImplemented
		return
	case isa.OP_RES:
		err = ErrOpcodeReserved
		return
	case isa.OP_TRAP:
		dec.Eat(4)
		err = cpu.Trap(isa.TrapVector(dec.Unsigned(isa.TRAPVECT8)))
		if err != nil {
			return
		}
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}
