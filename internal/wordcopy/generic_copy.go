package wordcopy

import "encoding/binary"

// genericCopy copies src to dst one 32-bit word at a time via
// encoding/binary, which is defined to perform only byte-sized accesses and
// is therefore safe on every architecture regardless of alignment support.
func genericCopy(dst, src []byte) {
	for i := 0; i < len(src); i += 4 {
		binary.LittleEndian.PutUint32(dst[i:], binary.LittleEndian.Uint32(src[i:]))
	}
}
