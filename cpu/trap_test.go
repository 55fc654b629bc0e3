package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lc3/isa"
)

func TestTrapInput(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Input = []rune("aé")

	assert.NoError(cpu.Trap(isa.TRAP_GETC))
	assert.Equal(uint16('a'), cpu.Register[0])
	assert.NoError(cpu.Trap(isa.TRAP_IN))
	assert.Equal(uint16('é'), cpu.Register[0])
	assert.Empty(cpu.Input)

	assert.ErrorIs(cpu.Trap(isa.TRAP_GETC), ErrInputEmpty)
	assert.Equal(uint16('é'), cpu.Register[0])

	// Characters outside the 16-bit range are not consumed.
	cpu.Input = []rune("\U0001F600z")
	for _, vector := range []isa.TrapVector{isa.TRAP_GETC, isa.TRAP_IN} {
		assert.ErrorIs(cpu.Trap(vector), ErrInputRange, vector)
		assert.Equal(uint16('é'), cpu.Register[0], vector)
		assert.Equal([]rune("\U0001F600z"), cpu.Input, vector)
	}
}

func TestTrapOut(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[0] = 0x1241
	assert.NoError(cpu.Trap(isa.TRAP_OUT))
	cpu.Register[0] = '\n'
	assert.NoError(cpu.Trap(isa.TRAP_OUT))
	assert.Equal("A\n", string(cpu.Output))
}

func TestTrapPuts(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Load(0x4000, []uint16{'H', 'i', '!', 0, 'X'})
	cpu.Register[0] = 0x4000
	assert.NoError(cpu.Trap(isa.TRAP_PUTS))
	assert.Equal("Hi!", string(cpu.Output))

	// Empty string
	cpu.Register[0] = 0x4003
	assert.NoError(cpu.Trap(isa.TRAP_PUTS))
	assert.Equal("Hi!", string(cpu.Output))
}

func TestTrapPutsp(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		cells  []uint16
		output string
	}{
		{"even", []uint16{'e'<<8 | 'H', 'l'<<8 | 'l', 0}, "Hell"},
		{"odd", []uint16{'e'<<8 | 'H', 'y'}, "Hey"},
		{"low zero stops", []uint16{'i'<<8 | 'H', 'X' << 8, 'Y'}, "Hi"},
		{"empty", []uint16{0}, ""},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Load(0x5000, entry.cells)
		cpu.Register[0] = 0x5000
		assert.NoError(cpu.Trap(isa.TRAP_PUTSP), entry.name)
		assert.Equal(entry.output, string(cpu.Output), entry.name)
	}
}

func TestTrapUnterminated(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for n := range cpu.Memory {
		cpu.Memory[n] = 0x2020
	}
	cpu.Output = []rune(">")

	assert.ErrorIs(cpu.Trap(isa.TRAP_PUTS), ErrStringUnterminated)
	assert.ErrorIs(cpu.Trap(isa.TRAP_PUTSP), ErrStringUnterminated)
	assert.Equal(">", string(cpu.Output))
}

func TestTrapHalt(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Trap(isa.TRAP_HALT))
	assert.True(cpu.Halted)

	assert.ErrorIs(cpu.Trap(isa.TrapVector(0xff)), ErrTrapVector)
}

func TestTrapProgram(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := doAssemble(t, []string{
		".ORIG x3000",
		"      GETC",
		"      OUT",
		"      LEA R0, MSG",
		"      PUTS",
		"      LEA R0, PACK",
		"      PUTSP",
		"      HALT",
		"MSG  .STRINGZ \"ok \"",
		"PACK .FILL x6968",
		"     .FILL x0021",
		".END",
	})
	cpu.Input = []rune("#")

	err := cpu.Run()
	assert.NoError(err)
	assert.Equal("#ok hi!", string(cpu.Output))
	assert.Equal(7, cpu.Ticks)
}
