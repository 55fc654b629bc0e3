package cpu

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/lc3/isa"
)

// Cond holds the condition codes. After any instruction that sets them,
// exactly one is true.
type Cond struct {
	N bool // Result was negative.
	Z bool // Result was zero.
	P bool // Result was positive.
}

// condOf returns the condition codes for a result.
func condOf(value uint16) Cond {
	negative := value&0x8000 != 0
	return Cond{
		N: negative,
		Z: value == 0,
		P: !negative && value != 0,
	}
}

// String returns the set flags as "n", "z" or "p" letters.
func (cond Cond) String() (text string) {
	for _, flag := range []struct {
		set  bool
		name string
	}{{cond.N, "n"}, {cond.Z, "z"}, {cond.P, "p"}} {
		if flag.set {
			text += flag.name
		}
	}
	if text == "" {
		text = "-"
	}
	return
}

// Cpu is the simulation context for an LC-3 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   [isa.MEMORY_SIZE]uint16    // Main memory.
	Register [isa.REGISTER_COUNT]uint16 // Register bank, R7 is the link register.
	Pc       uint16                     // Program counter.
	Cond     Cond                       // Condition codes.
	Halted   bool                       // Set by the HALT trap.

	Input  []rune // Characters waiting for GETC and IN.
	Output []rune // Characters written by OUT, PUTS and PUTSP.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Reset the CPU state.
// - Clears memory and registers.
// - Empties the input and output queues.
// - Sets the Z condition code, as the LC-3 does at power on.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Cond = Cond{Z: true}
	cpu.Halted = false
	cpu.Input = nil
	cpu.Output = nil
	cpu.Ticks = 0
}

// Load writes words into memory starting at start, and sets the PC to
// start. Addresses wrap around the top of memory.
func (cpu *Cpu) Load(start uint16, words []uint16) (err error) {
	if len(words) > isa.MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	for n, word := range words {
		cpu.Memory[start+uint16(n)] = word
	}
	cpu.Pc = start

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words at x%04X", len(words), start)
	}

	return
}

// LoadText parses text with ParseText and loads the words at start.
func (cpu *Cpu) LoadText(start uint16, text string) (err error) {
	words, err := ParseText(text)
	if err != nil {
		return
	}

	return cpu.Load(start, words)
}

// ParseText parses one 16 binary digit word per line. Blank lines are
// skipped, and the "(ADDR) " prefix of an assembler listing is ignored.
func ParseText(text string) (words []uint16, err error) {
	var lineno int
	for line := range strings.Lines(text) {
		lineno++

		field := strings.TrimSpace(line)
		if len(field) == 0 {
			continue
		}
		if field[0] == '(' {
			end := strings.IndexByte(field, ')')
			if end > 0 {
				field = strings.TrimSpace(field[end+1:])
			}
		}

		var word uint16
		word, err = ParseWord(field)
		if err != nil {
			err = ErrLoad{LineNo: lineno, Line: strings.TrimRight(line, "\r\n"), Err: err}
			return
		}
		words = append(words, word)
	}

	return
}

// Step executes the instruction at the PC.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	word := cpu.Memory[cpu.Pc]
	if cpu.Verbose {
		log.Printf("cpu: x%04X: %016b %v", cpu.Pc, word, Disassemble(word))
	}

	return cpu.Execute(word)
}

// Run steps until the CPU halts or an instruction fails.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"ir",
		"cond",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("x%04X", cpu.Pc)
		case "ir":
			word := cpu.Memory[cpu.Pc]
			strval = fmt.Sprintf("x%04X %v", word, Disassemble(word))
		case "cond":
			strval = cpu.Cond.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			val := cpu.Register[reg[1]-'0']
			strval = fmt.Sprintf("x%04X %6d", val, int16(val))
		case "halt":
			strval = fmt.Sprintf("%v", cpu.Halted)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
