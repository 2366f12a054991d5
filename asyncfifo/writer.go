// writer.go
//
// Write-domain port.  One Tick models one write-domain clock edge: sample
// the foreign pointer into the relay, gate the push on the registered full
// flag, apply the slot write, derive next pointer and next flag as pure
// functions of pre-tick state, then commit every register together and
// publish the new Gray pointer.

package asyncfifo

// Writer is the write-domain half of a FIFO.  All methods must be called
// from the single goroutine owning the write domain.
type Writer struct {
	f *FIFO
	port
	full bool
}

// Tick advances the write domain by one tick and reports whether the push
// was accepted.  A push while full is a no-op returning false — expected
// flow control, not a failure.
//
//go:nosplit
func (w *Writer) Tick(push bool, data uint64) bool {
	f := w.f

	// Relay stage-1 input: the read-domain Gray pointer as of this edge.
	sample := loadAcquireUint64(&f.rpub)

	// The flag gating acceptance is last tick's registered comparison.
	accepted := push && !w.full
	if accepted {
		storeReleaseUint64(&f.mem[w.bin&f.idxMask], data&f.dataMask)
	}

	nextBin, nextGray := f.nextPointer(&w.port, accepted)

	// Style #1 full: the next write Gray pointer equals the synchronized
	// read Gray pointer with its two MSBs complemented — the write pointer
	// has lapped the read pointer by exactly one wrap.  Plain equality would
	// also fire at the empty condition.
	fullNext := nextGray == w.q2^f.msbPair

	// Commit all registers together, then publish.
	w.q1, w.q2 = sample, w.q1
	w.bin, w.gray = nextBin, nextGray
	w.full = fullNext
	storeReleaseUint64(&f.wpub, nextGray)
	return accepted
}

// Full returns the registered full flag as of the last Tick.
func (w *Writer) Full() bool { return w.full }

// Reset reinitializes the write domain alone: pointer and relay to zero,
// full deasserted, Gray zero republished.  The read domain is untouched and
// reconciles over its next few ticks as the zeroed pointer drains through
// its relay.
func (w *Writer) Reset() {
	w.port = port{}
	w.full = false
	storeReleaseUint64(&w.f.wpub, 0)
}
