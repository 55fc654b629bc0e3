// Package io provides the character I/O channels of the LC-3 emulator.
// A Tape feeds the console input queue from an io.Reader and drains the
// console output queue to an io.Writer, one byte at a time.
package io

import (
	"iter"
)

// Channel defines the interface for all I/O channels of the emulator.
// Channels operate at the byte level and support sequential reading,
// writing, and rewinding.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields bytes from the channel.
	Receive() iter.Seq[byte]
	// Send writes a single byte to the channel.
	Send(value byte) error
}
