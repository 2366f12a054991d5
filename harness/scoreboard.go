// scoreboard.go
//
// Reference-model scoreboard.  A plain slice queue mirrors every accepted
// push; every accepted pop is checked against its head.  The scoreboard only
// ever consumes the two public port interfaces' observable results — it has
// no view into pointers or relays, so anything it catches is a contract
// violation, not an implementation detail.

package harness

import "main/utils"

// maxRecordedViolations bounds the violation log so a systematically broken
// run does not balloon the report.
const maxRecordedViolations = 16

// Scoreboard tracks the reference FIFO state for one run.
type Scoreboard struct {
	depth       int
	queue       []uint64
	maxInFlight int
	dropped     int
	violations  []string
}

// NewScoreboard builds a scoreboard for a FIFO of the given depth.
func NewScoreboard(depth int) *Scoreboard {
	return &Scoreboard{depth: depth, queue: make([]uint64, 0, depth+1)}
}

func (sb *Scoreboard) fail(msg string) {
	if len(sb.violations) < maxRecordedViolations {
		sb.violations = append(sb.violations, msg)
	} else {
		sb.dropped++
	}
}

// OnPush records an accepted push.  More than depth items in flight means
// the full flag failed in the unsafe direction.
func (sb *Scoreboard) OnPush(v uint64) {
	sb.queue = append(sb.queue, v)
	if n := len(sb.queue); n > sb.maxInFlight {
		sb.maxInFlight = n
	}
	if len(sb.queue) > sb.depth {
		sb.fail("capacity violation: " + utils.Itoa(len(sb.queue)) + " in flight, depth " + utils.Itoa(sb.depth))
	}
}

// OnPop checks an accepted pop's data against the reference head.  A pop
// with nothing in flight means the empty flag failed in the unsafe
// direction.
func (sb *Scoreboard) OnPop(got uint64) {
	if len(sb.queue) == 0 {
		sb.fail("underflow: pop accepted with nothing in flight, data " + utils.Hex64(got))
		return
	}
	want := sb.queue[0]
	sb.queue = sb.queue[1:]
	if got != want {
		sb.fail("order violation: popped " + utils.Hex64(got) + ", expected " + utils.Hex64(want))
	}
}

// CheckSettled compares the registered flags against the reference state.
// Valid only after both domains have idled past the relay depth plus the
// flag registration tick — before that the flags are allowed to lag in the
// conservative direction.
func (sb *Scoreboard) CheckSettled(full, empty bool) {
	if empty != (len(sb.queue) == 0) {
		sb.fail("settled empty flag " + boolStr(empty) + " with " + utils.Itoa(len(sb.queue)) + " in flight")
	}
	if full != (len(sb.queue) == sb.depth) {
		sb.fail("settled full flag " + boolStr(full) + " with " + utils.Itoa(len(sb.queue)) + " of " + utils.Itoa(sb.depth) + " in flight")
	}
}

// InFlight returns the current reference occupancy.
func (sb *Scoreboard) InFlight() int { return len(sb.queue) }

// MaxInFlight returns the high-water occupancy seen so far.
func (sb *Scoreboard) MaxInFlight() int { return sb.maxInFlight }

// Violations returns the recorded violations, with a trailer when the log
// was capped.
func (sb *Scoreboard) Violations() []string {
	if sb.dropped > 0 {
		return append(sb.violations[:len(sb.violations):len(sb.violations)],
			"… "+utils.Itoa(sb.dropped)+" further violations suppressed")
	}
	return sb.violations
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
