// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Global harness & trace-store tunables
//
// Purpose:
//   - Defines run-wide constants for the verification harness and the
//     SQLite trace store.
//   - Core widths and latencies live with the core (asyncfifo); only the
//     surrounding machinery is tuned here.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Harness ──────────────────────────────

const (
	// DefaultTicks is the per-scenario domain-tick budget when a scenario
	// does not set one.  Large enough for thousands of wrap-arounds of a
	// depth-16 FIFO at any of the built-in ratios.
	DefaultTicks = 200_000

	// DefaultPushBias / DefaultPopBias are the percentage of ticks on which
	// a side raises its request line when a scenario does not say otherwise.
	// Asymmetric defaults keep both full and empty regions exercised.
	DefaultPushBias = 75
	DefaultPopBias  = 60

	// SettleTicks is how many idle ticks each side runs after stimulus ends
	// before the scoreboard checks the flags against the reference model.
	// Covers the relay depth plus the registered-flag tick, with margin.
	SettleTicks = 8
)

// ───────────────────────────── Trace store ──────────────────────────────

const (
	// EventFlushThreshold is the number of buffered trace events that
	// triggers a batched transactional insert.
	EventFlushThreshold = 4096

	// TraceDBFile is the default on-disk database for persisted runs.
	TraceDBFile = "fifo_traces.db"

	// SummaryFileSuffix names the per-run JSON summary written next to the
	// database.
	SummaryFileSuffix = "_summary.json"
)
