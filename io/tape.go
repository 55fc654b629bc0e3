package io

import (
	"io"
	"iter"
)

// Tape provides sequential I/O operations for reading and writing byte
// streams. It wraps an io.Reader for input and an io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	// Err is the first read error other than io.EOF.
	Err error
}

var _ Channel = (*Tape)(nil)

// Rewind seeks the input back to its start, if the input supports it.
func (tc *Tape) Rewind() {
	tc.Err = nil

	seeker, ok := tc.Input.(io.Seeker)
	if ok {
		_, tc.Err = seeker.Seek(0, io.SeekStart)
	}
}

// Receive returns an iterator that yields bytes from the input stream until
// it is exhausted.
func (tc *Tape) Receive() iter.Seq[byte] {
	return func(yield func(value byte) bool) {
		if tc.Input == nil {
			return
		}
		for {
			var one [1]byte
			n, err := tc.Input.Read(one[:])
			if n == 1 {
				if !yield(one[0]) {
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					tc.Err = err
				}
				return
			}
		}
	}
}

// Send writes a byte to the output stream.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = tc.Output.Write([]byte{value})

	return
}
