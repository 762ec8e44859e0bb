package main

import (
	"github.com/spf13/cobra"

	"leaseflex/internal/underwriting"
)

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze every tier under the baseline assumptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := a.simulator()
			if err != nil {
				return err
			}
			baseline := sim.Baseline()
			results := sim.RunFullAnalysis()
			if a.v.GetBool("json") {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"assumptions":       baseline,
					"annual_claim_rate": underwriting.AnnualClaimRate(baseline),
					"tiers":             results,
				})
			}
			return renderAnalysis(cmd.OutOrStdout(), "Baseline analysis", baseline, results)
		},
	}
}
