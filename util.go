package bitpack

import "math/bits"

const bitsPerByte = 8

const bitsPerWord = 32

const bytesPerWord = 4

// makeMask returns a mask with the low shift bits set. shift may be 0..64;
// shift >= 64 returns all bits set.
func makeMask(shift uint) uint64 {
	switch {
	case shift == 0:
		return 0
	case shift >= 64:
		return ^uint64(0)
	default:
		return (uint64(1) << shift) - 1
	}
}

// log2 returns floor(log2(x)) for x >= 1. The caller must not pass 0.
func log2(x uint64) uint {
	return uint(bits.Len64(x)) - 1
}

// BitsRequired returns the smallest number of bits b such that
// max-min < 2^b. When min == max it returns 1, not 0, so that a field
// whose bounds later widen to a non-constant range does not require the
// writer and reader to agree on a new encoding for the degenerate case.
func BitsRequired(min, max int64) uint {
	if min == max {
		return 1
	}
	delta := uint64(max - min)
	return log2(delta) + 1
}

func bytesNeeded(bitCount uint64) uint64 {
	return (bitCount + bitsPerByte - 1) / bitsPerByte
}

func alignPadding(bitCount uint64) uint {
	remainder := uint(bitCount % bitsPerByte)
	if remainder == 0 {
		return 0
	}
	return bitsPerByte - remainder
}
