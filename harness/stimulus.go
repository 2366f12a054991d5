// stimulus.go
//
// Deterministic stimulus source.  Every run derives a 64-bit seed from its
// scenario name (sha3, so names spread over the full seed space), then walks
// a golden-ratio counter through Mix64.  Two runs of the same scenario see
// byte-identical request patterns and payloads, which is what lets a
// persisted trace be replayed against the verdict later.

package harness

import (
	"encoding/binary"

	"main/utils"

	"golang.org/x/crypto/sha3"
)

const goldenGamma = 0x9e3779b97f4a7c15

// SeedFor derives the stimulus seed for a scenario name.
func SeedFor(name string) uint64 {
	sum := sha3.Sum256([]byte(name))
	return binary.LittleEndian.Uint64(sum[:8])
}

// Stimulus produces the per-tick request decisions and payload values for
// one run.  Not safe for sharing across goroutines; the concurrent runner
// gives each side its own derived stream.
type Stimulus struct {
	seed     uint64
	ctr      uint64
	pushBias uint64
	popBias  uint64
	dataMask uint64
}

// NewStimulus builds the stimulus for a scenario.  Works on a copy, so nil
// biases pick up defaults without touching the caller's value.  An explicit
// Seed overrides the name-derived one.
func NewStimulus(sc Scenario, dataMask uint64) *Stimulus {
	sc.normalize()
	seed := sc.Seed
	if seed == 0 {
		seed = SeedFor(sc.Name)
	}
	return &Stimulus{
		seed:     seed,
		pushBias: uint64(*sc.PushBias),
		popBias:  uint64(*sc.PopBias),
		dataMask: dataMask,
	}
}

// nextWord advances the stream by one scrambled word.
//
//go:nosplit
//go:inline
func (s *Stimulus) nextWord() uint64 {
	s.ctr += goldenGamma
	return utils.Mix64(s.seed + s.ctr)
}

// WriteTick returns this write tick's request line and payload.
func (s *Stimulus) WriteTick() (push bool, data uint64) {
	w := s.nextWord()
	return w%100 < s.pushBias, (w >> 7) & s.dataMask
}

// ReadTick returns this read tick's request line.
func (s *Stimulus) ReadTick() (pop bool) {
	return s.nextWord()%100 < s.popBias
}

// PayloadAt returns the i-th payload of a pure sequential stream — the form
// the concurrent runner uses, where the writer pushes every value exactly
// once and the reader knows what to expect at each position.
func (s *Stimulus) PayloadAt(i uint64) uint64 {
	return utils.Mix64(s.seed+(i+1)*goldenGamma) & s.dataMask
}
