package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"leaseflex/internal/config"
	"leaseflex/internal/underwriting"
)

type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	cmd := &cobra.Command{
		Use:   "underwrite",
		Short: "Break-even pricing analysis for LeaseFlex tiers",
		Long: `underwrite runs the LeaseFlex underwriting simulator: expected claims,
loss ratios and break-even prices per rent tier under a set of assumptions.

Assumptions come from the built-in baseline, optionally overridden by a YAML
file (--assumptions or ASSUMPTIONS_FILE) and by scenario flags.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("assumptions", "", "YAML file with assumptions and tiers")
	cmd.PersistentFlags().Bool("json", false, "print results as JSON")
	_ = a.v.BindPFlag("assumptions_file", cmd.PersistentFlags().Lookup("assumptions"))
	_ = a.v.BindPFlag("json", cmd.PersistentFlags().Lookup("json"))
	a.v.AutomaticEnv()

	cmd.AddCommand(a.analyzeCmd())
	cmd.AddCommand(a.scenarioCmd())
	return cmd
}

func (a *app) simulator() (*underwriting.Simulator, error) {
	baseline, tiers, err := config.LoadAssumptions(a.v.GetString("assumptions_file"))
	if err != nil {
		return nil, err
	}
	return underwriting.NewSimulator(baseline, tiers)
}
