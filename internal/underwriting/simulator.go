package underwriting

import "fmt"

// Simulator runs tier analyses against a baseline assumption set. It never
// mutates its baseline; every run works on its own copy.
type Simulator struct {
	baseline Assumptions
	tiers    []Tier
}

// Scenario is the outcome of running a set of overrides.
type Scenario struct {
	Assumptions     Assumptions    `json:"assumptions"`
	AnnualClaimRate float64        `json:"annual_claim_rate"`
	Tiers           []TierAnalysis `json:"tiers"`
}

// NewSimulator validates the baseline and tiers and returns a simulator that
// owns copies of both.
func NewSimulator(baseline Assumptions, tiers []Tier) (*Simulator, error) {
	if err := baseline.Validate(); err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	for _, t := range tiers {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return &Simulator{baseline: baseline, tiers: append([]Tier(nil), tiers...)}, nil
}

// Default returns a simulator over the built-in assumptions and tiers.
func Default() *Simulator {
	return &Simulator{baseline: DefaultAssumptions(), tiers: DefaultTiers()}
}

func (s *Simulator) Baseline() Assumptions { return s.baseline }

func (s *Simulator) Tiers() []Tier { return append([]Tier(nil), s.tiers...) }

// RunFullAnalysis analyzes every tier under the baseline assumptions.
func (s *Simulator) RunFullAnalysis() []TierAnalysis {
	return s.Analyze(s.baseline)
}

// Analyze analyzes every tier under a. It does not validate a.
func (s *Simulator) Analyze(a Assumptions) []TierAnalysis {
	out := make([]TierAnalysis, 0, len(s.tiers))
	for _, t := range s.tiers {
		out = append(out, AnalyzeTier(t, a))
	}
	return out
}

// RunScenario merges o onto a copy of the baseline and reruns the analysis.
func (s *Simulator) RunScenario(o Overrides) (Scenario, error) {
	a := s.baseline.Merge(o)
	if err := a.Validate(); err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Assumptions:     a,
		AnnualClaimRate: AnnualClaimRate(a),
		Tiers:           s.Analyze(a),
	}, nil
}
