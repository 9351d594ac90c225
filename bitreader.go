package bitpack

import (
	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/bitpack/internal/wordcopy"
)

// BitReader unpacks arbitrary-width integer fields from a caller-owned byte
// buffer produced by a BitWriter. Unlike BitWriter's, its Align returns
// false on non-zero padding instead of asserting; reads past the declared
// capacity are still asserted against, so callers check WouldReadPastEnd
// first. See Stream and the SerializeX functions for the layer that
// actually rejects corrupt or truncated frames.
//
// A BitReader does not own buf; the caller must keep it alive and must not
// mutate it while the BitReader is in use.
type BitReader struct {
	buf           []byte
	scratch       uint64
	scratchBits   uint
	bitsRead      uint64
	wordIndex     uint
	capacityBits  uint64
	capacityWords uint
}

// Init binds r to buf for reading. len(buf) must be positive; it need not
// be a multiple of 4, but the caller's underlying allocation must be padded
// to the next 4-byte boundary so the final partial word can be addressed.
func (r *BitReader) Init(buf []byte) {
	assert.Assertf(len(buf) > 0, "buf must be non-empty")

	r.buf = buf
	r.scratch = 0
	r.scratchBits = 0
	r.bitsRead = 0
	r.wordIndex = 0
	r.capacityBits = uint64(len(buf)) * bitsPerByte
	r.capacityWords = uint((len(buf) + bytesPerWord - 1) / bytesPerWord)
}

// BitsRead returns the number of bits consumed so far.
func (r *BitReader) BitsRead() uint64 {
	return r.bitsRead
}

// BytesRead returns ceil(BitsRead() / 8).
func (r *BitReader) BytesRead() uint64 {
	return bytesNeeded(r.bitsRead)
}

// AlignBits returns the number of padding bits Align would need to consume
// right now to reach the next byte boundary.
func (r *BitReader) AlignBits() uint {
	return alignPadding(r.bitsRead)
}

// WouldReadPastEnd reports whether reading n more bits would exceed the
// reader's bit capacity.
func (r *BitReader) WouldReadPastEnd(n uint) bool {
	return r.bitsRead+uint64(n) > r.capacityBits
}

// ReadBits consumes and returns the next n bits, 1 <= n <= 32. The caller
// must have already verified !WouldReadPastEnd(n); ReadBits itself asserts
// that precondition rather than returning a failure bool, because reading
// past the declared capacity is a programmer error (the stream-level
// SerializeBits is what malicious/truncated input must go through).
func (r *BitReader) ReadBits(n uint) uint64 {
	assert.Assertf(n >= 1 && n <= bitsPerWord, "n %d out of range [1,%d]", n, bitsPerWord)
	assert.Assertf(!r.WouldReadPastEnd(n), "read of %d bits at offset %d exceeds capacity %d", n, r.bitsRead, r.capacityBits)

	if r.scratchBits < n {
		r.fillWord()
	}

	out := r.scratch & makeMask(n)
	r.scratch >>= n
	r.scratchBits -= n
	r.bitsRead += uint64(n)
	return out
}

func (r *BitReader) fillWord() {
	assert.Assertf(r.wordIndex < r.capacityWords, "fillWord called with no words remaining")

	start := int(r.wordIndex) * bytesPerWord
	var word uint64
	if start+bytesPerWord <= len(r.buf) {
		word = bytesToWord(r.buf[start:])
	} else {
		// Final partial word: the caller's allocation is required to be
		// padded to a 4-byte boundary, but only the bytes within
		// len(r.buf) are part of the declared capacity, so read what
		// exists and leave the rest as zero.
		var tmp [bytesPerWord]byte
		copy(tmp[:], r.buf[start:])
		word = bytesToWord(tmp[:])
	}

	r.scratch |= word << r.scratchBits
	r.scratchBits += bitsPerWord
	r.wordIndex++
}

// Align consumes (8 - bitsRead%8)%8 padding bits and returns true only if
// every one of them is zero. The caller must have already verified
// !WouldReadPastEnd(AlignBits()). A non-zero padding bit signals corrupt or
// malicious input and Align returns false without panicking.
func (r *BitReader) Align() bool {
	n := r.AlignBits()
	if n == 0 {
		return true
	}
	return r.ReadBits(n) == 0
}

// ReadBytes reads len(p) raw bytes from the stream into p. The stream must
// currently be byte-aligned. Whole words in the middle are bulk-copied
// directly from the underlying buffer; only the head and tail (up to 3
// bytes each) go through ReadBits.
func (r *BitReader) ReadBytes(p []byte) {
	assert.Assertf(r.bitsRead%bitsPerByte == 0, "ReadBytes called while not byte-aligned")
	assert.Assertf(!r.WouldReadPastEnd(uint(len(p))*bitsPerByte), "read of %d bytes exceeds capacity", len(p))

	remaining := p
	// scratchBits counts the bits of the current word not yet consumed, so
	// the head is exactly the whole bytes still staged in scratch.
	headLen := int(r.scratchBits / bitsPerByte)
	if headLen > len(remaining) {
		headLen = len(remaining)
	}
	for i := 0; i < headLen; i++ {
		remaining[i] = byte(r.ReadBits(bitsPerByte))
	}
	remaining = remaining[headLen:]
	if len(remaining) == 0 {
		return
	}

	assert.Assertf(r.scratchBits == 0, "internal invariant violated: scratch not drained at word boundary")

	bulkWords := len(remaining) / bytesPerWord
	bulkLen := bulkWords * bytesPerWord
	if bulkLen != 0 {
		src := r.buf[int(r.wordIndex)*bytesPerWord:]
		wordcopy.Copy(remaining[:bulkLen], src[:bulkLen])
		r.wordIndex += uint(bulkWords)
		r.bitsRead += uint64(bulkLen) * bitsPerByte
		remaining = remaining[bulkLen:]
		// The bulk copy consumed whole words directly from memory, so any
		// bits still staged in scratch would be stale; discard them. They
		// are already 0 because the head step above drained scratch to
		// exactly the word boundary, but clearing scratch itself (not
		// just scratchBits) removes a hazard for any future caller that
		// inspects it before checking scratchBits.
		r.scratch = 0
		r.scratchBits = 0
	}

	for i := range remaining {
		remaining[i] = byte(r.ReadBits(bitsPerByte))
	}
}
