package asm

import (
	"regexp"
	"strconv"
)

var (
	registerRegexp = regexp.MustCompile(`^[Rr][0-9]+$`)
	hexRegexp      = regexp.MustCompile(`^-?[0-9a-fA-F]+$`)
)

// ParseRegister parses a register operand, R0 through R7.
// ok is false if word does not have register syntax at all.
func ParseRegister(word string) (reg int, ok bool, err error) {
	if !registerRegexp.MatchString(word) {
		return
	}

	ok = true
	reg, err = strconv.Atoi(word[1:])
	if err != nil || reg > 7 {
		reg = 0
		err = ErrRegisterInvalid(word)
	}

	return
}

// ParseImmediate parses a '#' decimal or 'x' hexadecimal literal.
// ok is false if word does not start with an immediate prefix.
func ParseImmediate(word string) (value int, ok bool, err error) {
	if len(word) == 0 {
		return
	}

	var v64 int64
	switch word[0] {
	case '#':
		ok = true
		v64, err = strconv.ParseInt(word[1:], 10, 32)
	case 'x', 'X':
		ok = true
		if !hexRegexp.MatchString(word[1:]) {
			err = ErrImmediateInvalid(word)
			return
		}
		v64, err = strconv.ParseInt(word[1:], 16, 32)
	default:
		return
	}

	if err != nil {
		err = ErrImmediateInvalid(word)
		return
	}

	value = int(v64)
	return
}

// mustImmediate parses word as an immediate literal, failing when it is not one.
func mustImmediate(word string) (value int, err error) {
	value, ok, err := ParseImmediate(word)
	if err != nil {
		return
	}
	if !ok {
		err = ErrImmediateExpected(word)
	}
	return
}

// parseCount parses a .BLKW size, either an immediate or a bare decimal.
func parseCount(word string) (count int, err error) {
	count, ok, err := ParseImmediate(word)
	if err != nil {
		return
	}
	if !ok {
		var v64 int64
		v64, err = strconv.ParseInt(word, 10, 32)
		if err != nil {
			err = ErrBlockInvalid
			return
		}
		count = int(v64)
	}
	if count < 0 {
		err = ErrBlockInvalid
	}
	return
}
