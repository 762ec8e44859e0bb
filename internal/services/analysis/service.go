package analysis

import (
	"context"
	"log/slog"

	"leaseflex/internal/underwriting"
)

// Service serves simulator runs to operators.
type Service struct {
	sim *underwriting.Simulator
	log *slog.Logger
}

func New(sim *underwriting.Simulator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{sim: sim, log: log}
}

func (s *Service) FullAnalysis(ctx context.Context) []underwriting.TierAnalysis {
	return s.sim.RunFullAnalysis()
}

func (s *Service) Scenario(ctx context.Context, o underwriting.Overrides) (underwriting.Scenario, error) {
	sc, err := s.sim.RunScenario(o)
	if err != nil {
		return underwriting.Scenario{}, err
	}
	s.log.DebugContext(ctx, "underwriting scenario run", "annual_claim_rate", sc.AnnualClaimRate)
	return sc, nil
}
