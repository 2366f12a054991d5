// control.go — Global control flags and activity management for domain runners
// ============================================================================
// RUN CONTROL ORCHESTRATION
// ============================================================================
//
// Control provides the global signaling surface coordinating the two
// free-running domain goroutines of a concurrent FIFO run: a hot flag that
// keeps both sides in tight spin while a transfer is in flight, and a stop
// flag that drains them for shutdown.
//
// Threading model:
//   • The harness signals activity when a scenario starts feeding stimulus.
//   • Domain runners poll Flags() between ticks; they never write hot.
//   • Signal handlers call Shutdown(); runners exit at the next tick
//     boundary, leaving port state intact.

package control

import (
	"sync/atomic"
	"time"
)

var (
	hot  uint32 // 1 = transfer in flight, runners hold tight spin
	stop uint32 // 1 = drain and exit

	lastHot    int64                    // nanosecond timestamp of last activity
	cooldownNs = int64(1 * time.Second) // idle period before hot clears
)

// SignalActivity marks a transfer as active and records the timing used by
// PollCooldown.  Called by the harness when stimulus starts or resumes.
//
//go:nosplit
//go:inline
func SignalActivity() {
	atomic.StoreUint32(&hot, 1)
	atomic.StoreInt64(&lastHot, time.Now().UnixNano())
}

// PollCooldown clears the hot flag after a quiet second so idle runners can
// back off from tight spin.  Call it inline from runner loops.
//
//go:nosplit
//go:inline
func PollCooldown() {
	if atomic.LoadUint32(&hot) == 1 &&
		time.Now().UnixNano()-atomic.LoadInt64(&lastHot) > cooldownNs {
		atomic.StoreUint32(&hot, 0)
	}
}

// Shutdown requests a graceful drain of every domain runner.
//
//go:nosplit
//go:inline
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// Stopping reports whether Shutdown has been requested.
//
//go:nosplit
//go:inline
func Stopping() bool {
	return atomic.LoadUint32(&stop) != 0
}

// Flags returns pointers to the stop and hot flags for runners that poll
// them directly in their spin loops.
//
//go:nosplit
//go:inline
func Flags() (stopFlag, hotFlag *uint32) {
	return &stop, &hot
}

// ResetForTest rearms the flags between harness runs and tests.
func ResetForTest() {
	atomic.StoreUint32(&hot, 0)
	atomic.StoreUint32(&stop, 0)
	atomic.StoreInt64(&lastHot, 0)
}
