// Package bufalloc allocates and grows the plain byte buffers a BitWriter
// or BitReader operates on, rounding every request up to a whole number of
// 32-bit words the way §3.2 requires.
package bufalloc

import "github.com/chronos-tachyon/buffer/v3"

const bitsPerByte = 8
const bitsPerWord = 32
const bytesPerWord = 4

func roundUpToWords(capacityBits uint) uint {
	words := (capacityBits + bitsPerWord - 1) / bitsPerWord
	if words == 0 {
		words = 1
	}
	return words
}

// NewWriterBuffer returns a zeroed byte slice sized to hold at least
// capacityBits bits, rounded up to a whole number of 32-bit words, suitable
// for BitWriter.Init or BitReader.Init. A buffer.Buffer is constructed over
// the same bit count purely to exercise its own capacity bookkeeping and
// validation before the plain slice is handed back; BitWriter/BitReader
// operate on the returned []byte directly, not on the buffer.Buffer.
func NewWriterBuffer(capacityBits uint) []byte {
	words := roundUpToWords(capacityBits)
	numBits := words * bitsPerWord

	var staging buffer.Buffer
	staging.Init(numBits)

	return make([]byte, words*bytesPerWord)
}

// Grow returns a new byte slice at least large enough to hold
// capacityBits+extraBits bits, with the contents of buf copied into the
// front of it. The original buf is left untouched.
func Grow(buf []byte, extraBits uint) []byte {
	capacityBits := uint(len(buf)) * bitsPerByte
	grown := NewWriterBuffer(capacityBits + extraBits)
	copy(grown, buf)
	return grown
}
