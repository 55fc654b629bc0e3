package io

import (
	"iter"
	"unicode/utf8"
)

// SendRune sends a rune to the channel as its UTF-8 bytes.
func SendRune(ch Channel, value rune) (err error) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], value)
	for _, b := range buf[:n] {
		err = ch.Send(b)
		if err != nil {
			return
		}
	}
	return
}

// SendString sends every rune of text to the channel.
func SendString(ch Channel, text []rune) (err error) {
	for _, value := range text {
		err = SendRune(ch, value)
		if err != nil {
			return
		}
	}
	return
}

// ReceiveRunes returns an iterator that reads UTF-8 bytes from the channel
// and yields the decoded runes. Invalid or truncated sequences yield
// utf8.RuneError, one per byte.
func ReceiveRunes(ch Channel) iter.Seq[rune] {
	return func(yield func(value rune) bool) {
		var buf [utf8.UTFMax]byte
		var n int

		// flush decodes every complete rune at the front of buf.
		flush := func(final bool) bool {
			for n > 0 && (final || utf8.FullRune(buf[:n])) {
				value, size := utf8.DecodeRune(buf[:n])
				copy(buf[:], buf[size:n])
				n -= size
				if !yield(value) {
					return false
				}
			}
			return true
		}

		for b := range ch.Receive() {
			buf[n] = b
			n++
			if !flush(false) {
				return
			}
		}
		flush(true)
	}
}
