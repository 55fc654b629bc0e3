// Package cpu implements the LC-3 simulator.
//
// The CPU consists of 65536 words of memory, eight 16-bit general purpose
// registers (R0-R7, R7 receiving subroutine return addresses), a program
// counter, and the N/Z/P condition codes. Trap service routines for console
// I/O are built in and operate on the Input and Output character queues.
//
// Each Step fetches the word at the PC, advances the PC, decodes the word
// with a Decoder and dispatches to the opcode handler. A step that fails
// leaves the CPU state as it was before the step.
package cpu
