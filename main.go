// ════════════════════════════════════════════════════════════════════════════════════════════════
// Dual-Clock FIFO Verification Environment - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Dual-Clock Asynchronous FIFO
// Component: Main Entry Point & Run Orchestration
//
// Description:
//   Scenario-driven verification runner for the Gray-pointer asynchronous FIFO core.
//   Deterministic Sweep → Concurrent Stress → Trace Persistence → Verdict
//
// Architecture:
//   - Phase 1: Deterministic sweep — scheduled interleavings with exact latency checks
//   - Phase 2: Concurrent stress — free-running pinned domain goroutines
//   - Phase 3: Trace persistence — runs and event traces into SQLite, JSON summaries
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"main/constants"
	"main/control"
	"main/debug"
	"main/harness"
	"main/harvester"
	"main/utils"
)

// stressCount is the transfer size of the concurrent stress pass.
const stressCount = 1 << 20

func main() {
	// PHASE 0: scenario loading — file argument or built-in sweep.
	scenarios := harness.BuiltinScenarios()
	if len(os.Args) > 1 {
		loaded, err := harness.LoadScenarios(os.Args[1])
		if err != nil {
			debug.DropError("INIT", err)
			os.Exit(2)
		}
		scenarios = loaded
	}
	debug.DropMessage("INIT", utils.Itoa(len(scenarios))+" scenarios queued")

	setupSignalHandling()

	// Trace store is best-effort: a broken database loses persistence, not
	// the verdict.
	store, err := harvester.Open(constants.TraceDBFile)
	if err != nil {
		debug.DropError("TRACE", err)
		store = nil
	} else {
		defer store.Close()
	}

	failed := 0

	// PHASE 1: deterministic sweep.
	for _, sc := range scenarios {
		if control.Stopping() {
			debug.DropMessage("RUN", "shutdown requested, sweep abandoned")
			break
		}
		rep := harness.Run(sc)
		logVerdict(rep)
		if !rep.Passed {
			failed++
		}
		persist(store, rep)
	}

	// PHASE 2: concurrent stress on the canonical configuration.
	if !control.Stopping() {
		control.SignalActivity()
		rep := harness.RunConcurrent(
			harness.Scenario{Name: "stress-concurrent", DataBits: 32},
			stressCount, 0, 1)
		logVerdict(rep)
		if !rep.Passed {
			failed++
		}
		persist(store, rep)
	}

	// VERDICT
	if failed > 0 {
		debug.DropMessage("VERDICT", utils.Itoa(failed)+" run(s) FAILED")
		os.Exit(1)
	}
	debug.DropMessage("VERDICT", "all runs passed")
}

// logVerdict emits the one-line run summary.
func logVerdict(rep *harness.Report) {
	line := rep.Scenario.Name +
		": pushes " + utils.Utoa64(rep.AcceptedPushes) +
		" (+" + utils.Utoa64(rep.RejectedPushes) + " refused)" +
		", pops " + utils.Utoa64(rep.AcceptedPops) +
		" (+" + utils.Utoa64(rep.RejectedPops) + " refused)" +
		", peak " + utils.Itoa(rep.MaxInFlight) + "/" + utils.Itoa(rep.Depth)
	if rep.Passed {
		debug.DropMessage("RUN", line+" — PASS")
		return
	}
	debug.DropMessage("RUN", line+" — FAIL: "+strings.Join(rep.Violations, "; "))
}

// persist stores the run (and its events, when traced) plus a JSON summary
// for traced runs.  Persistence failures are logged and swallowed.
func persist(store *harvester.Store, rep *harness.Report) {
	if store == nil {
		return
	}
	id, err := store.PersistRun(rep)
	if err != nil {
		debug.DropError("TRACE", err)
		return
	}
	debug.DropMessage("TRACE", rep.Scenario.Name+" stored as run "+utils.Itoa(int(id))+
		" ("+utils.Itoa(len(rep.Events))+" events)")
	if rep.Scenario.Trace {
		path := rep.Scenario.Name + constants.SummaryFileSuffix
		if err := harvester.WriteSummary(path, rep); err != nil {
			debug.DropError("TRACE", err)
		}
	}
}

// setupSignalHandling converts SIGINT/SIGTERM into a control shutdown so
// the concurrent runners drain instead of dying mid-tick.
func setupSignalHandling() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		debug.DropMessage("SIGNAL", "shutdown requested")
		control.Shutdown()
	}()
}
