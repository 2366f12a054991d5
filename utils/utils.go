package utils

import "os"

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities — Zero-Alloc Formatting
///////////////////////////////////////////////////////////////////////////////

// Itoa renders an int in decimal without fmt.  Used on cold logging paths
// only.
//
//go:nosplit
//go:inline
func Itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Utoa64 renders a uint64 in decimal, same contract as Itoa.
//
//go:nosplit
//go:inline
func Utoa64(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Hex64 renders v as a 0x-prefixed minimal-width hex string.
//
//go:nosplit
//go:inline
func Hex64(v uint64) string {
	const digits = "0123456789abcdef"
	if v == 0 {
		return "0x0"
	}
	var buf [18]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	i -= 2
	buf[i], buf[i+1] = '0', 'x'
	return string(buf[i:])
}

///////////////////////////////////////////////////////////////////////////////
// Mixing — Deterministic Stimulus Scrambling
///////////////////////////////////////////////////////////////////////////////

// Mix64 is a finalizing 64-bit avalanche mix (MurmurHash3 fmix64).  The
// stimulus generator feeds it counters to derive payload values and request
// patterns that are deterministic per seed yet uncorrelated with the pointer
// arithmetic under test.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

///////////////////////////////////////////////////////////////////////////////
// Cold-Path Output
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes msg to stderr in one call, no fmt machinery.  Cold
// paths only — tick paths never log.
//
//go:nosplit
func PrintWarning(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}
