package config

import (
	"fmt"

	"github.com/spf13/viper"

	"leaseflex/internal/underwriting"
)

// LoadAssumptions reads simulator assumptions and, optionally, a tier table
// from a YAML file. Keys missing from the file keep their default values. An
// empty path returns the defaults.
func LoadAssumptions(path string) (underwriting.Assumptions, []underwriting.Tier, error) {
	a := underwriting.DefaultAssumptions()
	tiers := underwriting.DefaultTiers()
	if path == "" {
		return a, tiers, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return a, tiers, fmt.Errorf("read assumptions %s: %w", path, err)
	}
	if v.IsSet("assumptions") {
		if err := v.UnmarshalKey("assumptions", &a); err != nil {
			return a, tiers, fmt.Errorf("decode assumptions: %w", err)
		}
	}
	if v.IsSet("tiers") {
		tiers = nil
		if err := v.UnmarshalKey("tiers", &tiers); err != nil {
			return a, tiers, fmt.Errorf("decode tiers: %w", err)
		}
	}
	if err := a.Validate(); err != nil {
		return a, tiers, err
	}
	return a, tiers, nil
}
