// Package isa defines the LC-3 instruction set shared by the assembler and
// the simulator.
//
// Every instruction is one 16-bit word. The leading 4 bits select one of
// sixteen opcodes; the remaining 12 bits are split into register, flag and
// immediate fields whose widths are fixed per opcode:
//
//	ADD  |0001|DR |SR1|0|00|SR2|   ADD  |0001|DR |SR1|1|imm5   |
//	AND  |0101|DR |SR1|0|00|SR2|   AND  |0101|DR |SR1|1|imm5   |
//	BR   |0000|n|z|p|PCoffset9 |   JMP  |1100|000|BaseR|000000 |
//	JSR  |0100|1|PCoffset11    |   JSRR |0100|0|00|BaseR|000000|
//	LD   |0010|DR |PCoffset9   |   LDI  |1010|DR |PCoffset9    |
//	LDR  |0110|DR |BaseR|off6  |   LEA  |1110|DR |PCoffset9    |
//	NOT  |1001|DR |SR |111111  |   RTI  |1000|000000000000     |
//	ST   |0011|SR |PCoffset9   |   STI  |1011|SR |PCoffset9    |
//	STR  |0111|SR |BaseR|off6  |   TRAP |1111|0000|trapvect8   |
//
// PC-relative offsets are relative to the address of the instruction that
// follows the one being executed.
package isa

// Opcode is the 4-bit operation code of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BR   = Opcode(0b0000) // BR
	OP_ADD  = Opcode(0b0001) // ADD
	OP_LD   = Opcode(0b0010) // LD
	OP_ST   = Opcode(0b0011) // ST
	OP_JSR  = Opcode(0b0100) // JSR
	OP_AND  = Opcode(0b0101) // AND
	OP_LDR  = Opcode(0b0110) // LDR
	OP_STR  = Opcode(0b0111) // STR
	OP_RTI  = Opcode(0b1000) // RTI
	OP_NOT  = Opcode(0b1001) // NOT
	OP_LDI  = Opcode(0b1010) // LDI
	OP_STI  = Opcode(0b1011) // STI
	OP_JMP  = Opcode(0b1100) // JMP
	OP_RES  = Opcode(0b1101) // RES
	OP_LEA  = Opcode(0b1110) // LEA
	OP_TRAP = Opcode(0b1111) // TRAP
)

// TrapVector selects a trap service routine.
type TrapVector int

//go:generate go tool stringer -linecomment -type=TrapVector
const (
	TRAP_GETC  = TrapVector(0x20) // GETC
	TRAP_OUT   = TrapVector(0x21) // OUT
	TRAP_PUTS  = TrapVector(0x22) // PUTS
	TRAP_IN    = TrapVector(0x23) // IN
	TRAP_PUTSP = TrapVector(0x24) // PUTSP
	TRAP_HALT  = TrapVector(0x25) // HALT
)

// Field widths, in bits.
const (
	WORD       = 16 // Instruction and data word.
	OPCODE     = 4  // Leading opcode field.
	REG        = 3  // Register index.
	IMM5       = 5  // ADD/AND immediate.
	OFFSET6    = 6  // LDR/STR base+offset.
	TRAPVECT8  = 8  // TRAP vector (unsigned).
	PCOFFSET9  = 9  // BR/LD/LDI/LEA/ST/STI.
	PCOFFSET11 = 11 // JSR.
)

// Machine geometry.
const (
	MEMORY_SIZE    = 1 << WORD // Addressable words.
	REGISTER_COUNT = 8         // General purpose registers R0-R7.
	REG_LINK       = 7         // Register receiving the return address.
)

// Condition flag bits as laid out in the BR instruction.
const (
	COND_N = 0b100
	COND_Z = 0b010
	COND_P = 0b001
)

// Trap returns the instruction word for a TRAP to vector.
func Trap(vector TrapVector) uint16 {
	return uint16(OP_TRAP)<<12 | uint16(vector)&0xff
}

// SignedRange returns the inclusive range of a two's complement field.
func SignedRange(bits int) (lo, hi int) {
	return -(1 << (bits - 1)), (1 << (bits - 1)) - 1
}

// UnsignedRange returns the inclusive range of an unsigned field.
func UnsignedRange(bits int) (lo, hi int) {
	return 0, (1 << bits) - 1
}
