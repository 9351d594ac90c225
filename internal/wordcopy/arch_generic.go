//go:build !amd64 && !arm64

package wordcopy

// Architectures other than amd64/arm64 are not vetted for unaligned-access
// performance here, so they always take the safe word-at-a-time path.
func archAvailable() bool {
	return false
}
