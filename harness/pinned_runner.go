// pinned_runner.go
//
// Concurrent run mode: one goroutine per domain, optionally pinned to a
// core, free-running with no scheduler between them.  This is the shape the
// core is deployed in — the deterministic runner proves exact latencies, the
// pinned runner proves the crossing under real interleaving.
//
//   • Each side stays in hot-spin while the control hot flag is up; once
//     PollCooldown drops the flag after a quiet window, misses drain a spin
//     budget into cpuRelax back-off bursts.
//   • Exits when its share of the transfer completes or control.Shutdown is
//     raised; each side closes its done channel exactly once.
//
// Only order, loss, and duplication are checked here.  Exact flag latencies
// are phase-dependent across free-running domains and belong to the
// deterministic runner.

package harness

import (
	"runtime"
	"sync/atomic"

	"main/asyncfifo"
	"main/control"
	"main/utils"
)

const spinBudget = 256 // failed ticks before a cpuRelax back-off burst

// backoff advances a domain's miss counter after a rejected tick.  It polls
// the global cooldown each call; while the hot flag is up the spin stays
// tight and the counter is left alone.  Cold misses accumulate until the
// spin budget drains into a cpuRelax burst.
func backoff(miss int, hot *uint32) int {
	control.PollCooldown()
	if atomic.LoadUint32(hot) == 1 {
		return miss
	}
	if miss++; miss >= spinBudget {
		cpuRelax()
		return 0
	}
	return miss
}

// RunConcurrent pushes count sequential payloads through a FIFO with the
// write and read domains on their own goroutines, pinned to wcore/rcore
// when non-negative.  Returns once both sides finish or shutdown is raised.
func RunConcurrent(sc Scenario, count uint64, wcore, rcore int) *Report {
	sc.normalize()
	f := asyncfifo.New(asyncfifo.Config{DataBits: sc.DataBits, AddrBits: sc.AddrBits})
	wr, rd := f.WritePort(), f.ReadPort()
	stim := NewStimulus(sc, f.DataMask())
	rep := &Report{Scenario: sc, Depth: f.Depth()}

	var pushed, popped atomic.Uint64
	var mismatch atomic.Uint64 // first bad position + 1, 0 = clean
	var abort atomic.Bool      // reader bailed; writer must not spin on a full FIFO
	wdone := make(chan struct{})
	rdone := make(chan struct{})

	control.SignalActivity()
	_, hot := control.Flags()

	go func() {
		runtime.LockOSThread()
		setAffinity(wcore)
		defer func() {
			runtime.UnlockOSThread()
			close(wdone)
		}()

		miss := 0
		for i := uint64(0); i < count; {
			if control.Stopping() || abort.Load() {
				return
			}
			if wr.Tick(true, stim.PayloadAt(i)) {
				i++
				pushed.Store(i)
				miss = 0
				control.SignalActivity()
				continue
			}
			miss = backoff(miss, hot)
		}
	}()

	go func() {
		runtime.LockOSThread()
		setAffinity(rcore)
		defer func() {
			runtime.UnlockOSThread()
			close(rdone)
		}()

		miss := 0
		for i := uint64(0); i < count; {
			if control.Stopping() {
				return
			}
			if rd.Tick(true) {
				if rd.DataOut() != stim.PayloadAt(i) {
					mismatch.CompareAndSwap(0, i+1)
					abort.Store(true)
					return
				}
				i++
				popped.Store(i)
				miss = 0
				control.SignalActivity()
				continue
			}
			miss = backoff(miss, hot)
		}
	}()

	<-wdone
	<-rdone

	rep.AcceptedPushes = pushed.Load()
	rep.AcceptedPops = popped.Load()
	if pos := mismatch.Load(); pos != 0 {
		rep.Violations = append(rep.Violations, "order violation at item "+utils.Utoa64(pos-1))
	}
	if control.Stopping() {
		rep.Violations = append(rep.Violations, "run aborted by shutdown at "+utils.Utoa64(popped.Load())+"/"+utils.Utoa64(count))
	} else if rep.AcceptedPops != count {
		rep.Violations = append(rep.Violations, "loss: "+utils.Utoa64(rep.AcceptedPops)+" of "+utils.Utoa64(count)+" items arrived")
	}
	rep.Passed = len(rep.Violations) == 0
	return rep
}
