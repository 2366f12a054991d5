// reader.go
//
// Read-domain port.  Same tick discipline as the writer, plus the registered
// data output: every tick latches the slot addressed by the current read
// pointer, so the value of an accepted pop is visible one tick later (i.e.
// from DataOut once Tick returns).

package asyncfifo

// Reader is the read-domain half of a FIFO.  All methods must be called from
// the single goroutine owning the read domain.
type Reader struct {
	f *FIFO
	port
	empty bool
	data  uint64
}

// Tick advances the read domain by one tick and reports whether the pop was
// accepted.  A pop while empty is a no-op returning false; DataOut keeps its
// previous (stale) content in that case apart from the unconditional
// re-latch of the unmoved slot.
//
//go:nosplit
func (r *Reader) Tick(pop bool) bool {
	f := r.f

	// Relay stage-1 input: the write-domain Gray pointer as of this edge.
	sample := loadAcquireUint64(&f.wpub)

	accepted := pop && !r.empty

	// Unconditional registered read at the pre-advance pointer.  The slot a
	// pop consumes was committed by the write side before the Gray pointer
	// covering it was published, so the acquire load returns settled data.
	dataNext := loadAcquireUint64(&f.mem[r.bin&f.idxMask])

	nextBin, nextGray := f.nextPointer(&r.port, accepted)

	// Style #1 empty: direct Gray equality with the synchronized write
	// pointer — no wrap disambiguation needed on this side.
	emptyNext := nextGray == r.q2

	// Commit all registers together, then publish.
	r.q1, r.q2 = sample, r.q1
	r.bin, r.gray = nextBin, nextGray
	r.empty = emptyNext
	r.data = dataNext
	storeReleaseUint64(&f.rpub, nextGray)
	return accepted
}

// DataOut returns the registered data output: after a Tick that accepted a
// pop, this is the popped item.
func (r *Reader) DataOut() uint64 { return r.data }

// Empty returns the registered empty flag as of the last Tick.
func (r *Reader) Empty() bool { return r.empty }

// Reset reinitializes the read domain alone: pointer and relay to zero,
// empty asserted, data register cleared, Gray zero republished.
func (r *Reader) Reset() {
	r.port = port{}
	r.empty = true
	r.data = 0
	storeReleaseUint64(&r.f.rpub, 0)
}
