package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"leaseflex/internal/underwriting"
)

// scenarioFlags maps flag names onto the override they set.
var scenarioFlags = []struct {
	name  string
	usage string
	field func(o *underwriting.Overrides) **float64
}{
	{"break-rate", "annual probability a subscriber breaks their lease", func(o *underwriting.Overrides) **float64 { return &o.BaseBreakRate }},
	{"adverse-selection", "multiplier on the break rate for self-selected buyers", func(o *underwriting.Overrides) **float64 { return &o.AdverseSelectionMultiplier }},
	{"qualifying-rate", "share of breaks that are qualifying events", func(o *underwriting.Overrides) **float64 { return &o.QualifyingEventRate }},
	{"waiting-survival", "share of claims surviving the waiting period", func(o *underwriting.Overrides) **float64 { return &o.WaitingPeriodSurvival }},
	{"deductible-filter", "share of claims exceeding the deductible", func(o *underwriting.Overrides) **float64 { return &o.DeductibleFilter }},
	{"penalty-months", "average lease-break penalty in months of rent", func(o *underwriting.Overrides) **float64 { return &o.AvgPenaltyMonths }},
	{"deductible", "deductible in dollars", func(o *underwriting.Overrides) **float64 { return &o.Deductible }},
	{"cap-multiplier", "coverage cap as months of rent", func(o *underwriting.Overrides) **float64 { return &o.CoverageCapMultiplier }},
	{"cap-max", "absolute coverage cap in dollars", func(o *underwriting.Overrides) **float64 { return &o.CoverageCapMax }},
	{"target-loss-ratio", "loss ratio the break-even price targets", func(o *underwriting.Overrides) **float64 { return &o.TargetLossRatio }},
	{"churn", "annual subscriber churn rate", func(o *underwriting.Overrides) **float64 { return &o.AnnualChurnRate }},
}

func (a *app) scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Rerun the analysis with some assumptions overridden",
		Long: `Rerun the analysis with the flags you pass replacing the matching baseline
assumptions. Flags you omit keep their baseline values.`,
		Example: "  underwrite scenario --break-rate 0.2 --target-loss-ratio 0.5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := a.simulator()
			if err != nil {
				return err
			}
			overrides, err := overridesFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			sc, err := sim.RunScenario(overrides)
			if err != nil {
				return err
			}
			if a.v.GetBool("json") {
				return writeJSON(cmd.OutOrStdout(), sc)
			}
			return renderAnalysis(cmd.OutOrStdout(), "Scenario analysis", sc.Assumptions, sc.Tiers)
		},
	}
	for _, f := range scenarioFlags {
		cmd.Flags().Float64(f.name, 0, f.usage)
	}
	return cmd
}

func overridesFromFlags(fs *pflag.FlagSet) (underwriting.Overrides, error) {
	var o underwriting.Overrides
	for _, f := range scenarioFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return o, err
		}
		*f.field(&o) = &v
	}
	return o, nil
}
