package asm

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Line is one tokenized line of assembly source.
type Line struct {
	LineNo      int      // 1-based source line number.
	Source      string   // Raw source text.
	Labels      []string // Labels declared on this line.
	Instruction []string // Mnemonic or directive, then operands.
	Comment     string   // Text after ';'.

	Address uint16 // Resolved address, valid when Placed.
	Placed  bool   // Set by Link for lines that occupy memory.
}

// Op returns the upper case mnemonic or directive, or "" if the line has none.
func (line *Line) Op() string {
	if len(line.Instruction) == 0 {
		return ""
	}
	return strings.ToUpper(line.Instruction[0])
}

// Operands returns the operand tokens of the instruction.
func (line *Line) Operands() []string {
	if len(line.Instruction) == 0 {
		return nil
	}
	return line.Instruction[1:]
}

// isOp reports whether word names a mnemonic or a directive.
func isOp(word string) bool {
	if len(word) == 0 {
		return false
	}
	if word[0] == '.' {
		return true
	}
	_, ok := mnemonicMap[strings.ToUpper(word)]
	return ok
}

// TokenizeLine splits a single line of source into labels, instruction and
// comment. The returned Line has LineNo 0.
func TokenizeLine(text string) (line Line, err error) {
	line.Source = text

	var rest strings.Builder
	var comment strings.Builder
	var str strings.Builder

	inComment := false
	inString := false
	escaping := false
	hasString := false

	for _, ch := range text {
		switch {
		case inComment:
			comment.WriteRune(ch)
		case inString:
			switch {
			case escaping:
				escaping = false
				str.WriteRune(ch)
			case ch == '\\':
				escaping = true
			case ch == '"':
				inString = false
			default:
				str.WriteRune(ch)
			}
		case ch == ';':
			inComment = true
		case ch == '"':
			if hasString {
				err = ErrStringMultiple
				return
			}
			hasString = true
			inString = true
		default:
			rest.WriteRune(ch)
		}
	}

	if escaping {
		err = ErrEscapeDangling
		return
	}
	if inString {
		err = ErrStringUnterminated
		return
	}

	segments := strings.Split(rest.String(), ",")
	head := strings.Fields(segments[0])
	var operands []string
	for _, segment := range segments[1:] {
		operands = append(operands, strings.TrimSpace(segment))
	}

	var labels, instruction []string
	switch n := len(head); {
	case len(operands) > 0 || (n >= 2 && isOp(head[n-2])):
		split := max(n-2, 0)
		labels = head[:split]
		instruction = slices.Concat(head[split:], operands)
	case n >= 1 && isOp(head[n-1]):
		labels = head[:n-1]
		instruction = head[n-1:]
	default:
		labels = head
	}

	if hasString {
		instruction = append(instruction, strconv.Quote(str.String()))
	}

	line.Labels = dropEmpty(labels)
	line.Instruction = dropEmpty(instruction)
	line.Comment = comment.String()

	return
}

// dropEmpty returns words without empty entries.
func dropEmpty(words []string) (out []string) {
	for _, word := range words {
		if len(word) > 0 {
			out = append(out, word)
		}
	}
	return
}

// Tokenize splits a source stream into lines. Errors are located with
// ErrSyntax.
func Tokenize(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		var line Line
		line, err = TokenizeLine(text)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}
		line.LineNo = lineno
		lines = append(lines, line)
	}

	err = scanner.Err()

	return
}
