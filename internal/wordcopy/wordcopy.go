// Package wordcopy bulk-copies byte slices whose length is a multiple of 4,
// for the middle section of BitWriter.WriteBytes / BitReader.ReadBytes once
// the head bytes have brought the stream to a 32-bit word boundary.
//
// On architectures where the CPU supports unaligned 32-bit loads and stores
// cheaply, Copy defers to the runtime's memmove via the copy builtin. On
// architectures that do not make that guarantee, it falls back to a
// word-at-a-time copy through encoding/binary, which never performs an
// unaligned access of width greater than 1 byte.
package wordcopy

import "github.com/chronos-tachyon/assert"

// Copy copies src into dst. len(src) and len(dst) must be equal and a
// multiple of 4.
func Copy(dst, src []byte) {
	assert.Assertf(len(dst) == len(src), "len(dst) %d != len(src) %d", len(dst), len(src))
	assert.Assertf(len(src)%4 == 0, "len(src) %d is not a multiple of 4", len(src))

	if archAvailable() {
		copy(dst, src)
		return
	}
	genericCopy(dst, src)
}
