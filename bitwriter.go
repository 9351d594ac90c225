package bitpack

import (
	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/bitpack/internal/wordcopy"
)

// BitWriter packs arbitrary-width integer fields into a caller-owned byte
// buffer, low-bit-first, flushing complete 32-bit little-endian words as it
// goes. It knows nothing about field semantics; see Stream and the
// SerializeX functions for that layer.
//
// A BitWriter does not own buf; the caller must keep it alive and must not
// mutate it while the BitWriter is in use.
type BitWriter struct {
	buf          []byte
	scratch      uint64
	scratchBits  uint
	bitsWritten  uint64
	wordIndex    uint
	capacityBits uint64
	flushed      bool
}

// Init binds w to buf. len(buf) must be positive and a multiple of 4; w
// views buf as a sequence of 32-bit words.
func (w *BitWriter) Init(buf []byte) {
	assert.Assertf(len(buf) > 0, "buf must be non-empty")
	assert.Assertf(len(buf)%bytesPerWord == 0, "len(buf) %d is not a multiple of %d", len(buf), bytesPerWord)

	w.buf = buf
	w.scratch = 0
	w.scratchBits = 0
	w.bitsWritten = 0
	w.wordIndex = 0
	w.capacityBits = uint64(len(buf)) * bitsPerByte
	w.flushed = false
}

// BitsWritten returns the number of bits written so far, including bits
// still pending in scratch.
func (w *BitWriter) BitsWritten() uint64 {
	return w.bitsWritten
}

// BytesWritten returns ceil(BitsWritten() / 8).
func (w *BitWriter) BytesWritten() uint64 {
	return bytesNeeded(w.bitsWritten)
}

// AlignBits returns the number of zero bits Align would need to emit
// right now to reach the next byte boundary.
func (w *BitWriter) AlignBits() uint {
	return alignPadding(w.bitsWritten)
}

// WriteBits merges the low n bits of value into the stream. 1 <= n <= 32,
// value must fit in n bits, and there must be room in the buffer.
func (w *BitWriter) WriteBits(value uint64, n uint) {
	assert.Assertf(!w.flushed, "WriteBits called after Flush")
	assert.Assertf(n >= 1 && n <= bitsPerWord, "n %d out of range [1,%d]", n, bitsPerWord)
	assert.Assertf(value&^makeMask(n) == 0, "value %d does not fit in %d bits", value, n)
	assert.Assertf(w.bitsWritten+uint64(n) <= w.capacityBits, "write of %d bits exceeds capacity %d at offset %d", n, w.capacityBits, w.bitsWritten)

	w.scratch |= (value & makeMask(n)) << w.scratchBits
	w.scratchBits += n
	w.bitsWritten += uint64(n)

	if w.scratchBits >= bitsPerWord {
		w.flushWord()
	}
}

func (w *BitWriter) flushWord() {
	wordToBytes(w.buf[w.wordIndex*bytesPerWord:], w.scratch&makeMask(bitsPerWord))
	w.scratch >>= bitsPerWord
	w.scratchBits -= bitsPerWord
	w.wordIndex++
}

// Align pads the stream with zero bits until BitsWritten is a multiple of
// 8. It is a no-op if the stream is already byte-aligned. The writer's
// Align can never fail; only the reader's Align can reject corrupt padding.
func (w *BitWriter) Align() {
	if n := w.AlignBits(); n != 0 {
		w.WriteBits(0, n)
	}
}

// WriteBytes writes raw bytes to the stream. The stream must currently be
// byte-aligned (call Align first if not). Whole words in the middle of p
// are bulk-copied directly into the underlying buffer; only the head and
// tail (up to 3 bytes each) go through WriteBits.
func (w *BitWriter) WriteBytes(p []byte) {
	assert.Assertf(!w.flushed, "WriteBytes called after Flush")
	assert.Assertf(w.bitsWritten%bitsPerByte == 0, "WriteBytes called while not byte-aligned")
	assert.Assertf(w.bitsWritten+uint64(len(p))*bitsPerByte <= w.capacityBits, "write of %d bytes exceeds capacity", len(p))

	remaining := p
	headLen := 0
	if currentByteInWord := int(w.scratchBits / bitsPerByte); currentByteInWord != 0 {
		headLen = bytesPerWord - currentByteInWord
	}
	if headLen > len(remaining) {
		headLen = len(remaining)
	}
	for i := 0; i < headLen; i++ {
		w.WriteBits(uint64(remaining[i]), bitsPerByte)
	}
	remaining = remaining[headLen:]
	if len(remaining) == 0 {
		return
	}

	assert.Assertf(w.scratchBits == 0, "internal invariant violated: scratch not flushed at word boundary")

	bulkWords := len(remaining) / bytesPerWord
	bulkLen := bulkWords * bytesPerWord
	if bulkLen != 0 {
		dst := w.buf[w.wordIndex*bytesPerWord:]
		wordcopy.Copy(dst[:bulkLen], remaining[:bulkLen])
		w.wordIndex += uint(bulkWords)
		w.bitsWritten += uint64(bulkLen) * bitsPerByte
		remaining = remaining[bulkLen:]
	}

	for _, b := range remaining {
		w.WriteBits(uint64(b), bitsPerByte)
	}
}

// Flush writes any residual scratch bits out as one final little-endian
// word (high bits zero) and marks the writer Flushed. It must be called
// before the caller's buffer is treated as the complete encoded message.
// Calling Flush a second time is a no-op.
func (w *BitWriter) Flush() {
	if w.flushed {
		return
	}
	if w.scratchBits > 0 {
		wordToBytes(w.buf[w.wordIndex*bytesPerWord:], w.scratch)
		w.scratch = 0
		w.scratchBits = 0
		w.wordIndex++
	}
	w.flushed = true
}
