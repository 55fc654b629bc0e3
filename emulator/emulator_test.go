package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/ezrec/lc3/asm"
	"github.com/ezrec/lc3/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)

	// An empty program executes NOPs forever, so the step budget stops it.
	emu.MaxSteps = 4
	assert.NoError(emu.Reset())
	err := emu.Run()
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(4, emu.Ticks())
}

// doRun assembles program, feeds it input, and runs it to completion.
func doRun(t *testing.T, emu *Emulator, program []string, input string) (output string, err error) {
	prog, err := asm.Assemble(strings.Join(program, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	emu.Tape.Input = strings.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Run()
	output = tape_output.String()
	return
}

func TestEmulatorEcho(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"        LEA R0, PROMPT",
		"        PUTS",
		"LOOP    GETC",
		"        ADD R1, R0, #-10 ; newline ends the echo",
		"        BRz DONE",
		"        OUT",
		"        BR LOOP",
		"DONE    HALT",
		"PROMPT  .STRINGZ \"> \"",
		".END",
	}

	emu := NewEmulator()
	output, err := doRun(t, emu, program, "héllo\nignored")
	assert.NoError(err)
	assert.Equal("> héllo", output)
	assert.True(emu.Cpu.Halted)
	assert.Equal([]rune("ignored"), emu.Cpu.Input)

	// Ticking a halted emulator is done, and does nothing.
	ticks := emu.Ticks()
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(ticks, emu.Ticks())
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; comment",
		".ORIG x3000",
		"        AND R0, R0, #0",
		"",
		"        ADD R0, R0, #2",
		"        HALT",
		".END",
	}

	prog, err := asm.Assemble(strings.Join(program, "\n"))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())

	var lines []int
	for {
		lines = append(lines, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		if done {
			break
		}
	}
	assert.Equal([]int{3, 5, 6}, lines)
	assert.Equal(0, emu.LineNo())
	assert.Equal(uint16(2), emu.Cpu.Register[0])

	var addrs []uint16
	for addr := range emu.Program.Codes() {
		addrs = append(addrs, addr)
	}
	assert.Equal([]uint16{0x3000, 0x3001, 0x3002}, addrs)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"        GETC",
		"        GETC",
		"        HALT",
		".END",
	}

	emu := NewEmulator()
	_, err := doRun(t, emu, program, "a")
	assert.ErrorIs(err, cpu.ErrInputEmpty)

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(3, runtime.LineNo)
		assert.Equal(uint16(0x3001), runtime.Pc)
	}
	assert.True(strings.HasPrefix(err.Error(), "line 3 x3001 "), err.Error())

	// State is left at the failing instruction.
	assert.Equal(uint16(0x3001), emu.Cpu.Pc)
	assert.Equal(uint16('a'), emu.Cpu.Register[0])

	err = &ErrRuntime{Pc: 0x3000, LineNo: 1234, Err: cpu.ErrHalted}
	assert.Equal("line 1234 x3000 cpu halted", err.Error())
}

func TestEmulatorStepLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"SPIN    BRnzp SPIN",
		".END",
	}

	emu := NewEmulator()
	emu.MaxSteps = 100
	_, err := doRun(t, emu, program, "")
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(100, emu.Ticks())

	// Reset restarts the budget.
	assert.NoError(emu.Reset())
	assert.Equal(0, emu.Ticks())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"        GETC",
		"        OUT",
		"        HALT",
		".END",
	}

	emu := NewEmulator()
	output, err := doRun(t, emu, program, "xy")
	assert.NoError(err)
	assert.Equal("x", output)

	// The tape input is rewound on reset.
	assert.NoError(emu.Reset())
	assert.Equal([]rune("xy"), emu.Cpu.Input)
	assert.False(emu.Cpu.Halted)
	assert.Equal(uint16(0x3000), emu.Cpu.Pc)
}

func TestEmulatorNoTapeOutput(t *testing.T) {
	assert := assert.New(t)

	prog, err := asm.Assemble(".ORIG x3000\nLEA R0, MSG\nPUTS\nHALT\nMSG .STRINGZ \"kept\"\n.END")
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal("kept", string(emu.Cpu.Output))
}

func TestEmulatorEval(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		"        LD R0, VALUE",
		"        ST R0, RESULT",
		"        NOT R1, R0",
		"        LEA R0, MSG",
		"        PUTS",
		"        HALT",
		"VALUE   .FILL #5",
		"RESULT  .BLKW 1",
		"MSG     .STRINGZ \"done\"",
		".END",
	}

	emu := NewEmulator()
	_, err := doRun(t, emu, program, "")
	assert.NoError(err)

	table := []struct {
		expr  string
		value starlark.Value
	}{
		{"mem(sym('RESULT'))", starlark.MakeInt(5)},
		{"sym('MSG')", starlark.MakeInt(0x3008)},
		{"R1", starlark.MakeInt(0xfffa)},
		{"signed(R1)", starlark.MakeInt(-6)},
		{"N and not Z and not P", starlark.True},
		{"HALTED and PC == 0x3006", starlark.True},
		{"TICKS", starlark.MakeInt(6)},
		{"OUTPUT", starlark.String("done")},
	}

	for _, entry := range table {
		value, err := emu.Eval(entry.expr)
		if !assert.NoError(err, entry.expr) {
			continue
		}
		eq, err := starlark.Equal(entry.value, value)
		assert.NoError(err, entry.expr)
		assert.True(eq, "%v: %v", entry.expr, value)
	}

	value, err := emu.Eval("[mem(a) for a in range(0x3008, 0x300d)]")
	assert.NoError(err)
	assert.Equal("[100, 111, 110, 101, 0]", value.String())

	_, err = emu.Eval("sym('NOWHERE')")
	assert.ErrorIs(err, asm.ErrLabelMissing("NOWHERE"))
	var probe *ErrProbe
	assert.ErrorAs(err, &probe)

	_, err = emu.Eval("R0 +")
	assert.Error(err)

	_, err = emu.Eval("mem()")
	assert.Error(err)
}
