// scenario.go
//
// Scenario definitions for FIFO verification runs.  Scenarios are plain JSON
// so parameter sweeps live in files next to the binary; decoding goes through
// sonnet, the JSON codec used throughout this codebase.

package harness

import (
	"errors"
	"os"

	"main/constants"

	"github.com/sugawarayuuta/sonnet"
)

// Scenario parameterizes one verification run: FIFO widths, the two domain
// periods (abstract time units per tick — only the ratio matters), the tick
// budget, and the request biases driving the stimulus.
type Scenario struct {
	Name        string `json:"name"`
	DataBits    uint   `json:"data_bits"`
	AddrBits    uint   `json:"addr_bits"`
	WritePeriod uint64 `json:"write_period"`
	ReadPeriod  uint64 `json:"read_period"`
	Ticks       int    `json:"ticks"`
	PushBias    *uint  `json:"push_bias,omitempty"` // percent of write ticks raising push; nil → default, 0 → never
	PopBias     *uint  `json:"pop_bias,omitempty"`  // percent of read ticks raising pop; nil → default, 0 → never
	Seed        uint64 `json:"seed"`                // 0 → derived from Name
	Trace       bool   `json:"trace"`               // capture per-tick events for the trace store
}

// Bias wraps a bias percentage for a Scenario literal.  Zero is a real
// setting (a side that never requests), so the biases are pointers and only
// an absent field picks up the default.
func Bias(v uint) *uint {
	return &v
}

// normalize fills zero fields with the house defaults.  Width defaults are
// owned by the core and left at zero here.
func (sc *Scenario) normalize() {
	if sc.WritePeriod == 0 {
		sc.WritePeriod = 1
	}
	if sc.ReadPeriod == 0 {
		sc.ReadPeriod = 1
	}
	if sc.Ticks == 0 {
		sc.Ticks = constants.DefaultTicks
	}
	if sc.PushBias == nil {
		sc.PushBias = Bias(constants.DefaultPushBias)
	}
	if sc.PopBias == nil {
		sc.PopBias = Bias(constants.DefaultPopBias)
	}
}

// LoadScenarios reads a JSON array of scenarios from path.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scs []Scenario
	if err := sonnet.Unmarshal(data, &scs); err != nil {
		return nil, err
	}
	if len(scs) == 0 {
		return nil, errors.New("harness: scenario file holds no scenarios")
	}
	for i := range scs {
		if scs[i].Name == "" {
			return nil, errors.New("harness: scenario without a name")
		}
	}
	return scs, nil
}

// BuiltinScenarios is the default sweep run when no scenario file is given:
// matched rates, both skew directions, a coprime ratio, and a deep burst at
// the canonical depth-16 configuration.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{Name: "matched-1to1", Trace: true},
		{Name: "fast-writer-4to1", WritePeriod: 1, ReadPeriod: 4},
		{Name: "fast-reader-1to4", WritePeriod: 4, ReadPeriod: 1},
		{Name: "coprime-3to7", WritePeriod: 3, ReadPeriod: 7},
		{Name: "wide-deep-burst", DataBits: 32, AddrBits: 6, WritePeriod: 1, ReadPeriod: 9, PushBias: Bias(95), PopBias: Bias(40)},
		{Name: "shallow-2slot", DataBits: 8, AddrBits: 1, WritePeriod: 2, ReadPeriod: 3},
	}
}
