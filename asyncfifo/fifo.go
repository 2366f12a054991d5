// fifo.go
//
// Dual-clock asynchronous FIFO core.  Moves DataBits-wide items from a write
// domain to a read domain that share no tick or phase relationship, using
// Gray-coded pointers carried across the boundary through two-stage relays.
// Full/empty detection is "Style #1": each side compares its own next Gray
// pointer against the synchronized foreign Gray pointer directly (with the
// two MSBs complemented on the full side) and never reconstructs a foreign
// binary value in the flag path.
//
// The storage layout mirrors the SPSC rings elsewhere in this codebase: a
// power-of-two slot array indexed by the low AddrBits of a one-bit-wider
// binary pointer, the extra wrap bit disambiguating full from empty.  Unlike
// those rings, the two sides never read each other's binary cursors — only
// Gray pointers cross, so a stale sample is always some value the other side
// actually held, never a torn intermediate.
//
// Each port is strictly single-owner: one goroutine ticks the write port, one
// ticks the read port.  All cross-domain traffic flows through the two
// published pointer cells plus the slot array, accessed exclusively via the
// acquire/release helpers in atomic.go.

package asyncfifo

import "main/gray"

const (
	// DefaultDataBits and DefaultAddrBits give the canonical 8-bit × depth-16
	// configuration.
	DefaultDataBits = 8
	DefaultAddrBits = 4

	// SyncStages is the depth of each pointer relay.  A published pointer is
	// held in the destination's stage-2 register exactly SyncStages
	// destination ticks after the sample that first caught it, worst case one
	// extra tick of phase alignment on top.
	SyncStages = 2

	// FlagLatency is the registered-flag delay in own-domain ticks: the
	// full/empty value gating acceptance during a tick is the comparison
	// committed on the previous tick.  Documented contract, not tunable.
	FlagLatency = 1
)

// Config sizes a FIFO.  Zero fields take the defaults.
type Config struct {
	DataBits uint // item width, 1..64
	AddrBits uint // log2 of depth, 1..32
}

// FIFO owns the shared slot array, the two published Gray-pointer cells, and
// the two port state machines.  Obtain the ports once via WritePort and
// ReadPort; the FIFO itself has no tick of its own.
type FIFO struct {
	mem      []uint64
	idxMask  uint64 // depth-1, applied to binary pointers for slot addressing
	ptrMask  uint64 // wrap mask for the (AddrBits+1)-wide binary pointer
	dataMask uint64
	msbPair  uint64 // top two pointer bits, XORed into the full comparison

	// Published Gray pointers.  wpub is written only by the write port and
	// read only by the read port's relay; rpub is the mirror image.  Each
	// lives on its own cache line, as do the two port register files —
	// same false-sharing discipline as the SPSC rings.
	_    [64]byte
	wpub uint64
	_    [56]byte
	rpub uint64
	_    [56]byte

	w Writer
	_ [64]byte
	r Reader
}

// New builds a FIFO for the given widths.  Panics on widths that would break
// the masking arithmetic, same contract as the ring constructors.
func New(cfg Config) *FIFO {
	if cfg.DataBits == 0 {
		cfg.DataBits = DefaultDataBits
	}
	if cfg.AddrBits == 0 {
		cfg.AddrBits = DefaultAddrBits
	}
	if cfg.DataBits > 64 {
		panic("asyncfifo: DataBits must be 1..64")
	}
	if cfg.AddrBits > 32 {
		panic("asyncfifo: AddrBits must be 1..32")
	}
	depth := uint64(1) << cfg.AddrBits
	f := &FIFO{
		mem:      make([]uint64, depth),
		idxMask:  depth - 1,
		ptrMask:  gray.Mask(cfg.AddrBits + 1),
		dataMask: gray.Mask(cfg.DataBits),
		msbPair:  3 << (cfg.AddrBits - 1),
	}
	f.w.f = f
	f.r.f = f
	f.r.empty = true
	return f
}

// Depth returns the slot capacity.
func (f *FIFO) Depth() int { return len(f.mem) }

// DataMask returns the item width mask; pushed values are truncated to it.
func (f *FIFO) DataMask() uint64 { return f.dataMask }

// WritePort returns the write-domain port.  Single goroutine ownership.
func (f *FIFO) WritePort() *Writer { return &f.w }

// ReadPort returns the read-domain port.  Single goroutine ownership.
func (f *FIFO) ReadPort() *Reader { return &f.r }

// port carries the registers every domain owns: its pointer unit (binary
// pointer plus Gray mirror, kept in lockstep) and the two relay stages
// holding the foreign Gray pointer.  q2 is the externally usable relay
// output; comparisons read it before the tick's commit, matching
// simultaneous register-update semantics.
type port struct {
	bin, gray uint64
	q1, q2    uint64
}

// nextPointer is the pure next-state function of a pointer unit: advance by
// one when the operation was accepted, wrap at the pointer width.  Commit
// happens in the port's Tick after the flag comparison has been computed.
func (f *FIFO) nextPointer(p *port, accepted bool) (bin, g uint64) {
	bin = p.bin
	if accepted {
		bin = (bin + 1) & f.ptrMask
	}
	return bin, gray.Encode(bin)
}
