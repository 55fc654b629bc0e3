package asm

import (
	"github.com/ezrec/lc3/isa"
)

// encodeFunc packs the operands of one instruction line.
type encodeFunc func(ctx *genContext) error

// Mnemonic is an assembler instruction and its encoding rule.
// The opcode field is packed before Encode is called, so Encode
// only packs the remaining 12 bits.
type Mnemonic struct {
	Opcode isa.Opcode // Base opcode the mnemonic encodes to.
	Encode encodeFunc // Encoding rule.
}

// mnemonicMap maps upper case mnemonics to their encodings.
var mnemonicMap = map[string]Mnemonic{
	"ADD":  {isa.OP_ADD, encodeAlu},
	"AND":  {isa.OP_AND, encodeAlu},
	"JMP":  {isa.OP_JMP, encodeJmp},
	"RET":  {isa.OP_JMP, encodeRet},
	"JSR":  {isa.OP_JSR, encodeJsr},
	"JSRR": {isa.OP_JSR, encodeJsrr},
	"LD":   {isa.OP_LD, encodePcRelative},
	"LDI":  {isa.OP_LDI, encodePcRelative},
	"LEA":  {isa.OP_LEA, encodePcRelative},
	"ST":   {isa.OP_ST, encodePcRelative},
	"STI":  {isa.OP_STI, encodePcRelative},
	"LDR":  {isa.OP_LDR, encodeBaseOffset},
	"STR":  {isa.OP_STR, encodeBaseOffset},
	"NOT":  {isa.OP_NOT, encodeNot},
	"RTI":  {isa.OP_RTI, encodeRti},
	"TRAP": {isa.OP_TRAP, encodeTrap},

	"GETC":  {isa.OP_TRAP, makeTrap(isa.TRAP_GETC)},
	"OUT":   {isa.OP_TRAP, makeTrap(isa.TRAP_OUT)},
	"PUTS":  {isa.OP_TRAP, makeTrap(isa.TRAP_PUTS)},
	"IN":    {isa.OP_TRAP, makeTrap(isa.TRAP_IN)},
	"PUTSP": {isa.OP_TRAP, makeTrap(isa.TRAP_PUTSP)},
	"HALT":  {isa.OP_TRAP, makeTrap(isa.TRAP_HALT)},
}

func init() {
	// BR, and BR followed by any non-empty ordering of n, z and p.
	mnemonicMap["BR"] = Mnemonic{isa.OP_BR, makeBranch(isa.COND_N | isa.COND_Z | isa.COND_P)}

	flags := []struct {
		name byte
		cond uint16
	}{{'N', isa.COND_N}, {'Z', isa.COND_Z}, {'P', isa.COND_P}}

	var permute func(suffix string, cond uint16, used int)
	permute = func(suffix string, cond uint16, used int) {
		if len(suffix) > 0 {
			mnemonicMap["BR"+suffix] = Mnemonic{isa.OP_BR, makeBranch(cond)}
		}
		for n, flag := range flags {
			if used&(1<<n) != 0 {
				continue
			}
			permute(suffix+string(flag.name), cond|flag.cond, used|(1<<n))
		}
	}
	permute("", 0, 0)
}

// encodeAlu encodes ADD and AND, register or imm5 second source.
func encodeAlu(ctx *genContext) (err error) {
	operands, err := ctx.operands(3)
	if err != nil {
		return
	}
	err = ctx.register(operands[0])
	if err != nil {
		return
	}
	err = ctx.register(operands[1])
	if err != nil {
		return
	}
	reg, ok, err := ParseRegister(operands[2])
	if err != nil {
		return
	}
	if ok {
		ctx.enc.Field(0, 1)
		ctx.enc.Field(0, 2)
		ctx.enc.Field(uint16(reg), isa.REG)
		return
	}
	ctx.enc.Field(1, 1)
	return ctx.immediate(operands[2], isa.IMM5, false)
}

// makeBranch encodes a conditional branch with fixed n/z/p bits.
func makeBranch(cond uint16) encodeFunc {
	return func(ctx *genContext) (err error) {
		operands, err := ctx.operands(1)
		if err != nil {
			return
		}
		ctx.enc.Field(cond, 3)
		return ctx.immediate(operands[0], isa.PCOFFSET9, false)
	}
}

// encodePcRelative encodes LD, LDI, LEA, ST and STI.
func encodePcRelative(ctx *genContext) (err error) {
	operands, err := ctx.operands(2)
	if err != nil {
		return
	}
	err = ctx.register(operands[0])
	if err != nil {
		return
	}
	return ctx.immediate(operands[1], isa.PCOFFSET9, false)
}

// encodeBaseOffset encodes LDR and STR.
func encodeBaseOffset(ctx *genContext) (err error) {
	operands, err := ctx.operands(3)
	if err != nil {
		return
	}
	for _, operand := range operands[:2] {
		err = ctx.register(operand)
		if err != nil {
			return
		}
	}
	return ctx.immediate(operands[2], isa.OFFSET6, false)
}

// makeTrap encodes a trap shorthand with a fixed vector.
func makeTrap(vector isa.TrapVector) encodeFunc {
	return func(ctx *genContext) (err error) {
		_, err = ctx.operands(0)
		if err != nil {
			return
		}
		ctx.enc.Field(isa.Trap(vector), isa.WORD-isa.OPCODE)
		return
	}
}

func encodeJmp(ctx *genContext) (err error) {
	operands, err := ctx.operands(1)
	if err != nil {
		return
	}
	ctx.enc.Field(0, 3)
	err = ctx.register(operands[0])
	ctx.enc.Field(0, 6)
	return
}

// encodeRet encodes JMP R7.
func encodeRet(ctx *genContext) (err error) {
	_, err = ctx.operands(0)
	if err != nil {
		return
	}
	ctx.enc.Field(0, 3)
	ctx.enc.Field(isa.REG_LINK, isa.REG)
	ctx.enc.Field(0, 6)
	return
}

func encodeJsr(ctx *genContext) (err error) {
	operands, err := ctx.operands(1)
	if err != nil {
		return
	}
	ctx.enc.Field(1, 1)
	return ctx.immediate(operands[0], isa.PCOFFSET11, false)
}

func encodeJsrr(ctx *genContext) (err error) {
	operands, err := ctx.operands(1)
	if err != nil {
		return
	}
	ctx.enc.Field(0, 1)
	ctx.enc.Field(0, 2)
	err = ctx.register(operands[0])
	ctx.enc.Field(0, 6)
	return
}

func encodeNot(ctx *genContext) (err error) {
	operands, err := ctx.operands(2)
	if err != nil {
		return
	}
	for _, operand := range operands {
		err = ctx.register(operand)
		if err != nil {
			return
		}
	}
	ctx.enc.Field(0b111111, 6)
	return
}

func encodeRti(ctx *genContext) (err error) {
	_, err = ctx.operands(0)
	if err != nil {
		return
	}
	ctx.enc.Field(0, 12)
	return
}

func encodeTrap(ctx *genContext) (err error) {
	operands, err := ctx.operands(1)
	if err != nil {
		return
	}
	ctx.enc.Field(0, 4)
	return ctx.immediate(operands[0], isa.TRAPVECT8, true)
}
