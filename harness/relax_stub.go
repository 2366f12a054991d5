// relax_stub.go
//
// Portable spin back-off.  A dedicated PAUSE/WFE stub is not worth carrying
// here — the runners are verification tools, not the latency path — so the
// back-off yields to the scheduler instead.

package harness

import "runtime"

// cpuRelax backs a spin loop off without sleeping.
func cpuRelax() {
	runtime.Gosched()
}
