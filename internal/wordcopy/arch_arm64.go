//go:build arm64

package wordcopy

import "golang.org/x/sys/cpu"

// ASIMD-capable arm64 cores perform unaligned 32-bit loads/stores at full
// speed; the handful of arm64 variants Go still supports without ASIMD do
// not, and fall back to the generic word-at-a-time path.
func archAvailable() bool {
	return cpu.ARM64.HasASIMD
}
