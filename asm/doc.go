// Package asm implements the two pass assembler for LC-3 assembly source.
//
// Source is split into lines (Tokenize), labels are bound to addresses in a
// first pass (Link), and each line is then encoded into 16-bit words in a
// second pass (Generate). Assemble runs all three and returns the Program.
//
// Supported directives are .ORIG, .END, .FILL, .BLKW and .STRINGZ. Mnemonics
// are case-insensitive, labels are case-sensitive.
package asm
