package bitpack

import "encoding/binary"

// wordToBytes writes the low 32 bits of x into p[0:4] as a little-endian
// word. p must have length >= 4.
func wordToBytes(p []byte, x uint64) {
	binary.LittleEndian.PutUint32(p, uint32(x))
}

// bytesToWord reads a little-endian 32-bit word from p[0:4]. p must have
// length >= 4.
func bytesToWord(p []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(p))
}
