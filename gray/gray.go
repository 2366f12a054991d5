// gray.go
//
// Binary ↔ Gray-code conversion for clock-domain-crossing pointers.  A Gray
// code changes exactly one bit between consecutive integers, so a value
// sampled mid-transition by a foreign clock resolves to either the old or
// the new encoding — never a blend of the two.  Every pointer that leaves
// its own domain in this codebase crosses in Gray form.

package gray

// Encode returns the reflected-binary Gray code of b.
//
//go:nosplit
//go:inline
func Encode(b uint64) uint64 {
	return b ^ (b >> 1)
}

// Decode inverts Encode by folding the prefix XOR down the word.  Diagnostic
// and test use only — the flag comparison path works on Gray values directly
// and never reconstructs a foreign binary pointer.
//
//go:nosplit
//go:inline
func Decode(g uint64) uint64 {
	g ^= g >> 32
	g ^= g >> 16
	g ^= g >> 8
	g ^= g >> 4
	g ^= g >> 2
	g ^= g >> 1
	return g
}

// Mask returns the all-ones mask for a bits-wide value.  bits ≥ 64 saturates
// to a full word.
//
//go:nosplit
//go:inline
func Mask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}
