package emulator

import (
	"fmt"
	"iter"
	"maps"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lc3/internal"
)

// registers returns the machine state visible to probe expressions.
func (emu *Emulator) registers() iter.Seq2[string, starlark.Value] {
	cp := emu.Cpu

	values := map[string]starlark.Value{
		"PC":     starlark.MakeInt(int(cp.Pc)),
		"N":      starlark.Bool(cp.Cond.N),
		"Z":      starlark.Bool(cp.Cond.Z),
		"P":      starlark.Bool(cp.Cond.P),
		"HALTED": starlark.Bool(cp.Halted),
		"TICKS":  starlark.MakeInt(cp.Ticks),
		"OUTPUT": starlark.String(string(cp.Output)),
	}
	for n, reg := range cp.Register {
		values[fmt.Sprintf("R%d", n)] = starlark.MakeInt(int(reg))
	}

	return maps.All(values)
}

// builtins returns the functions available to probe expressions.
func (emu *Emulator) builtins() iter.Seq2[string, starlark.Value] {
	mem := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var addr int
		err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr)
		if err != nil {
			return
		}
		value = starlark.MakeInt(int(emu.Cpu.Memory[uint16(addr)]))
		return
	}

	sym := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var label string
		err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &label)
		if err != nil {
			return
		}
		addr, err := emu.Program.Symbols.Lookup(label)
		if err != nil {
			return
		}
		value = starlark.MakeInt(int(addr))
		return
	}

	signed := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var word int
		err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &word)
		if err != nil {
			return
		}
		value = starlark.MakeInt(int(int16(word)))
		return
	}

	return maps.All(map[string]starlark.Value{
		"mem":    starlark.NewBuiltin("mem", mem),
		"sym":    starlark.NewBuiltin("sym", sym),
		"signed": starlark.NewBuiltin("signed", signed),
	})
}

// Values returns every name predeclared for probe expressions.
func (emu *Emulator) Values() iter.Seq2[string, starlark.Value] {
	return internal.Concat2(emu.registers(), emu.builtins())
}

// Eval evaluates a Starlark probe expression against the machine state,
// for example "R0 == 0 and mem(sym('RESULT')) == 5".
func (emu *Emulator) Eval(expr string) (value starlark.Value, err error) {
	thread := starlark.Thread{Name: "probe"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, val := range emu.Values() {
		pred[name] = val
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "probe", prog, pred)
	if err != nil {
		err = &ErrProbe{Expr: expr, Err: err}
		return
	}

	value = dict["rc"]
	return
}
