// runner.go
//
// Deterministic two-domain scheduler.  No global tick exists in the system
// under test; the scheduler only decides *which domain ticks next* by
// advancing two virtual timelines and always serving the earlier one (ties
// go to the write side, documented and relied on by the latency tests).
// Within a tick the domain's port runs synchronously and atomically, exactly
// the contract the core defines.

package harness

import (
	"main/asyncfifo"
	"main/constants"
)

// Event is one recorded domain tick, the unit the trace store persists and
// Replay consumes.
type Event struct {
	Seq      uint64 `json:"seq"`
	Time     uint64 `json:"time"`   // virtual timeline units
	Domain   byte   `json:"domain"` // 'W' or 'R'
	Req      bool   `json:"req"`
	Accepted bool   `json:"accepted"`
	Data     uint64 `json:"data"` // pushed value / popped DataOut when accepted
	Full     bool   `json:"full"`
	Empty    bool   `json:"empty"`
}

// Report is the outcome of one run.
type Report struct {
	Scenario       Scenario `json:"scenario"`
	Depth          int      `json:"depth"`
	AcceptedPushes uint64   `json:"accepted_pushes"`
	RejectedPushes uint64   `json:"rejected_pushes"`
	AcceptedPops   uint64   `json:"accepted_pops"`
	RejectedPops   uint64   `json:"rejected_pops"`
	MaxInFlight    int      `json:"max_in_flight"`
	Violations     []string `json:"violations,omitempty"`
	Passed         bool     `json:"passed"`
	Events         []Event  `json:"-"`
}

// Run executes one scenario deterministically and scores it.
func Run(sc Scenario) *Report {
	sc.normalize()
	f := asyncfifo.New(asyncfifo.Config{DataBits: sc.DataBits, AddrBits: sc.AddrBits})
	wr, rd := f.WritePort(), f.ReadPort()
	stim := NewStimulus(sc, f.DataMask())
	sb := NewScoreboard(f.Depth())
	rep := &Report{Scenario: sc, Depth: f.Depth()}

	wnext, rnext := sc.WritePeriod, sc.ReadPeriod
	var seq uint64
	for n := 0; n < sc.Ticks; n++ {
		if wnext <= rnext {
			push, data := stim.WriteTick()
			acc := wr.Tick(push, data)
			switch {
			case acc:
				sb.OnPush(data)
				rep.AcceptedPushes++
			case push:
				rep.RejectedPushes++
			}
			if sc.Trace {
				rep.Events = append(rep.Events, Event{
					Seq: seq, Time: wnext, Domain: 'W',
					Req: push, Accepted: acc, Data: data, Full: wr.Full(),
				})
			}
			wnext += sc.WritePeriod
		} else {
			pop := stim.ReadTick()
			acc := rd.Tick(pop)
			switch {
			case acc:
				sb.OnPop(rd.DataOut())
				rep.AcceptedPops++
			case pop:
				rep.RejectedPops++
			}
			if sc.Trace {
				rep.Events = append(rep.Events, Event{
					Seq: seq, Time: rnext, Domain: 'R',
					Req: pop, Accepted: acc, Data: rd.DataOut(), Empty: rd.Empty(),
				})
			}
			rnext += sc.ReadPeriod
		}
		seq++
	}

	// Let both relays drain with the request lines low, then the registered
	// flags must agree exactly with the reference occupancy.
	for i := 0; i < constants.SettleTicks; i++ {
		wr.Tick(false, 0)
		rd.Tick(false)
	}
	sb.CheckSettled(wr.Full(), rd.Empty())

	rep.MaxInFlight = sb.MaxInFlight()
	rep.Violations = sb.Violations()
	rep.Passed = len(rep.Violations) == 0
	return rep
}

// Replay feeds a recorded event stream back through a fresh scoreboard and
// returns the violations it reproduces.  Used to validate persisted traces:
// a clean run's trace must replay clean.
func Replay(events []Event, depth int) []string {
	sb := NewScoreboard(depth)
	for i := range events {
		ev := &events[i]
		if !ev.Accepted {
			continue
		}
		switch ev.Domain {
		case 'W':
			sb.OnPush(ev.Data)
		case 'R':
			sb.OnPop(ev.Data)
		}
	}
	return sb.Violations()
}
