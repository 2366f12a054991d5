package asyncfifo

import (
	"testing"

	"main/utils"
)

// drain ticks the reader with pop asserted until it reports empty and the
// relay has settled, returning the popped values in order.
func drain(rd *Reader, limit int) []uint64 {
	var out []uint64
	idle := 0
	for i := 0; i < limit; i++ {
		if rd.Tick(true) {
			out = append(out, rd.DataOut())
			idle = 0
		} else if idle++; idle > SyncStages+FlagLatency+2 {
			break
		}
	}
	return out
}

// TestNewPanicsOnBadWidths verifies the constructor rejects widths that would
// break the masking arithmetic.
func TestNewPanicsOnBadWidths(t *testing.T) {
	bad := []Config{{DataBits: 65, AddrBits: 4}, {DataBits: 8, AddrBits: 33}}
	for _, cfg := range bad {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%+v) should panic", cfg)
				}
			}()
			_ = New(cfg)
		}()
	}
}

// TestDefaults checks the zero Config yields the canonical 8-bit × depth-16
// FIFO with empty asserted and full deasserted out of reset.
func TestDefaults(t *testing.T) {
	f := New(Config{})
	if f.Depth() != 16 {
		t.Fatalf("Depth = %d, want 16", f.Depth())
	}
	if f.DataMask() != 0xff {
		t.Fatalf("DataMask = %#x, want 0xff", f.DataMask())
	}
	if !f.ReadPort().Empty() {
		t.Fatal("reader must come up empty")
	}
	if f.WritePort().Full() {
		t.Fatal("writer must come up not full")
	}
}

// TestFastWriterSlowReader is the canonical depth-16 scenario: the write
// domain runs unopposed until full, which must assert after exactly 16
// accepted pushes and before a 17th is accepted; the reader then drains all
// 16 values in order and empty must assert right after the 16th pop.
func TestFastWriterSlowReader(t *testing.T) {
	f := New(Config{})
	wr, rd := f.WritePort(), f.ReadPort()

	accepted := 0
	for i := 0; i < 16; i++ {
		if wr.Full() {
			t.Fatalf("full asserted after only %d accepted pushes", accepted)
		}
		if !wr.Tick(true, uint64(i)) {
			t.Fatalf("push %d rejected with space available", i)
		}
		accepted++
	}
	if !wr.Full() {
		t.Fatal("full must assert after the 16th accepted push")
	}
	if wr.Tick(true, 99) {
		t.Fatal("17th push must be rejected")
	}

	got := drain(rd, 64)
	if len(got) != 16 {
		t.Fatalf("drained %d values, want 16", len(got))
	}
	for i, v := range got {
		if v != uint64(i) {
			t.Fatalf("pop %d = %d, want %d", i, v, i)
		}
	}
	if !rd.Empty() {
		t.Fatal("empty must assert after the 16th pop settles")
	}
	if rd.Tick(true) {
		t.Fatal("pop from empty FIFO must be rejected")
	}
}

// TestEmptyDeassertLatency pins the exact crossing pipeline: one pushed item
// becomes poppable on the reader's fourth tick — two relay stages, one tick
// for the registered flag, acceptance on the next.
func TestEmptyDeassertLatency(t *testing.T) {
	f := New(Config{})
	wr, rd := f.WritePort(), f.ReadPort()

	if !wr.Tick(true, 0x5a) {
		t.Fatal("push into empty FIFO rejected")
	}
	for i := 0; i < SyncStages+FlagLatency; i++ {
		if rd.Tick(true) {
			t.Fatalf("pop accepted on tick %d, before the crossing settled", i+1)
		}
	}
	if !rd.Tick(true) {
		t.Fatalf("pop still rejected on tick %d", SyncStages+FlagLatency+1)
	}
	if got := rd.DataOut(); got != 0x5a {
		t.Fatalf("DataOut = %#x, want 0x5a", got)
	}
}

// TestFullDeassertAfterDrain verifies the write side releases full once the
// read pointer has crossed back, and that freed capacity is reusable.
func TestFullDeassertAfterDrain(t *testing.T) {
	f := New(Config{})
	wr, rd := f.WritePort(), f.ReadPort()

	for i := 0; i < 16; i++ {
		wr.Tick(true, uint64(i))
	}
	if !wr.Full() {
		t.Fatal("precondition: full after 16 pushes")
	}
	if len(drain(rd, 64)) != 16 {
		t.Fatal("precondition: drain of 16")
	}

	// Idle write ticks let the read pointer cross; full must clear within the
	// relay depth plus the registered-flag tick.
	for i := 0; i < SyncStages+FlagLatency; i++ {
		wr.Tick(false, 0)
	}
	if wr.Full() {
		t.Fatal("full stuck after drain and resync")
	}
	if !wr.Tick(true, 0xaa) {
		t.Fatal("push rejected after capacity was freed")
	}
}

// TestDataTruncation checks pushed values are masked to DataBits.
func TestDataTruncation(t *testing.T) {
	f := New(Config{DataBits: 4, AddrBits: 2})
	wr, rd := f.WritePort(), f.ReadPort()
	wr.Tick(true, 0xf7)
	got := drain(rd, 32)
	if len(got) != 1 || got[0] != 0x7 {
		t.Fatalf("got %v, want [0x7]", got)
	}
}

// TestOrderAcrossRatios interleaves the two domains at several unrelated
// tick ratios and verifies strict FIFO order with no loss or duplication.
// Rejected pushes are re-issued, the only recovery the interface offers.
func TestOrderAcrossRatios(t *testing.T) {
	ratios := []struct{ wper, rper int }{{1, 1}, {1, 3}, {3, 1}, {2, 5}, {7, 2}}
	const count = 1000

	for _, ratio := range ratios {
		f := New(Config{DataBits: 16, AddrBits: 3})
		wr, rd := f.WritePort(), f.ReadPort()

		pushed, popped := 0, 0
		wnext, rnext := ratio.wper, ratio.rper
		for step := 0; popped < count; step++ {
			if step > 100*count {
				t.Fatalf("ratio %d:%d stalled at %d/%d popped", ratio.wper, ratio.rper, popped, count)
			}
			if wnext <= rnext {
				if pushed < count && wr.Tick(true, utils.Mix64(uint64(pushed))&0xffff) {
					pushed++
				} else if pushed >= count {
					wr.Tick(false, 0)
				}
				wnext += ratio.wper
			} else {
				if rd.Tick(true) {
					want := utils.Mix64(uint64(popped)) & 0xffff
					if got := rd.DataOut(); got != want {
						t.Fatalf("ratio %d:%d: pop %d = %#x, want %#x", ratio.wper, ratio.rper, popped, got, want)
					}
					popped++
				}
				rnext += ratio.rper
			}
		}
	}
}

// TestCapacityInvariant runs a skewed interleave and checks the accepted-
// but-unpopped count never exceeds the depth.
func TestCapacityInvariant(t *testing.T) {
	f := New(Config{DataBits: 8, AddrBits: 2})
	wr, rd := f.WritePort(), f.ReadPort()
	depth := f.Depth()

	inFlight := 0
	for i := 0; i < 4000; i++ {
		if wr.Tick(true, uint64(i)) {
			inFlight++
		}
		if inFlight > depth {
			t.Fatalf("in-flight %d exceeds depth %d", inFlight, depth)
		}
		// Reader runs one tick for every three writer ticks.
		if i%3 == 0 {
			if rd.Tick(true) {
				inFlight--
			}
		}
	}
}

// TestDualReset resets both domains mid-sequence and verifies the FIFO comes
// back coherent: flags at initial values, stale items invisible, and a fresh
// sequence flowing cleanly.
func TestDualReset(t *testing.T) {
	f := New(Config{})
	wr, rd := f.WritePort(), f.ReadPort()

	for i := 0; i < 9; i++ {
		wr.Tick(true, uint64(0x40+i))
	}
	rd.Tick(true)
	rd.Tick(true)

	wr.Reset()
	rd.Reset()

	if wr.Full() {
		t.Fatal("full must deassert on write reset")
	}
	if !rd.Empty() {
		t.Fatal("empty must assert on read reset")
	}
	if rd.Tick(true) {
		t.Fatal("pop accepted right after dual reset")
	}

	for i := 0; i < 5; i++ {
		if !wr.Tick(true, uint64(i)) {
			t.Fatalf("post-reset push %d rejected", i)
		}
	}
	got := drain(rd, 64)
	if len(got) != 5 {
		t.Fatalf("post-reset drain = %v, want 5 values", got)
	}
	for i, v := range got {
		if v != uint64(i) {
			t.Fatalf("post-reset pop %d = %d, want %d — stale data leaked", i, v, i)
		}
	}
}

// TestOneSidedReset asserts only the local guarantees of an independent
// reset: the resetting domain returns to its initial flag state immediately,
// whatever the other domain is doing.
func TestOneSidedReset(t *testing.T) {
	f := New(Config{})
	wr, rd := f.WritePort(), f.ReadPort()

	for i := 0; i < 16; i++ {
		wr.Tick(true, uint64(i))
	}
	if !wr.Full() {
		t.Fatal("precondition: full")
	}
	wr.Reset()
	if wr.Full() {
		t.Fatal("write reset must deassert full")
	}

	// Read side has consumed nothing; resetting it must assert empty and
	// reject pops until the (also reset) write pointer view settles.
	rd.Reset()
	if !rd.Empty() {
		t.Fatal("read reset must assert empty")
	}
}
