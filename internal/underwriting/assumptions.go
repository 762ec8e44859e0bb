package underwriting

import (
	"errors"
	"fmt"
)

// Assumptions is the actuarial input to the simulator. Rates are
// probabilities in [0, 1]; amounts and multipliers are positive.
type Assumptions struct {
	// Early lease break rate in the general population, per year.
	BaseBreakRate float64 `json:"base_break_rate" mapstructure:"base_break_rate"`
	// Buyers self-select; this scales the base rate.
	AdverseSelectionMultiplier float64 `json:"adverse_selection_multiplier" mapstructure:"adverse_selection_multiplier"`
	// Share of early breaks with a covered reason.
	QualifyingEventRate float64 `json:"qualifying_event_rate" mapstructure:"qualifying_event_rate"`
	// Share of claimants still subscribed after the waiting period.
	WaitingPeriodSurvival float64 `json:"waiting_period_survival" mapstructure:"waiting_period_survival"`
	// Share of claimants who still file given the deductible.
	DeductibleFilter float64 `json:"deductible_filter" mapstructure:"deductible_filter"`

	AvgPenaltyMonths      float64 `json:"avg_penalty_months" mapstructure:"avg_penalty_months"`
	Deductible            float64 `json:"deductible" mapstructure:"deductible"`
	CoverageCapMultiplier float64 `json:"coverage_cap_multiplier" mapstructure:"coverage_cap_multiplier"`
	CoverageCapMax        float64 `json:"coverage_cap_max" mapstructure:"coverage_cap_max"`
	TargetLossRatio       float64 `json:"target_loss_ratio" mapstructure:"target_loss_ratio"`
	AnnualChurnRate       float64 `json:"annual_churn_rate" mapstructure:"annual_churn_rate"`
}

// DefaultAssumptions is the baseline assumption set.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		BaseBreakRate:              0.12,
		AdverseSelectionMultiplier: 2.0,
		QualifyingEventRate:        0.55,
		WaitingPeriodSurvival:      0.85,
		DeductibleFilter:           0.90,
		AvgPenaltyMonths:           2,
		Deductible:                 750,
		CoverageCapMultiplier:      1,
		CoverageCapMax:             15_000,
		TargetLossRatio:            0.60,
		AnnualChurnRate:            0.30,
	}
}

var ErrInvalidAssumptions = errors.New("invalid assumptions")

// Validate checks the ranges of every field and reports all violations.
func (a Assumptions) Validate() error {
	var errs []error
	prob := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrInvalidAssumptions, name, v))
		}
	}
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidAssumptions, name, v))
		}
	}

	prob("base_break_rate", a.BaseBreakRate)
	prob("qualifying_event_rate", a.QualifyingEventRate)
	prob("waiting_period_survival", a.WaitingPeriodSurvival)
	prob("deductible_filter", a.DeductibleFilter)
	prob("target_loss_ratio", a.TargetLossRatio)
	prob("annual_churn_rate", a.AnnualChurnRate)
	positive("adverse_selection_multiplier", a.AdverseSelectionMultiplier)
	positive("avg_penalty_months", a.AvgPenaltyMonths)
	positive("deductible", a.Deductible)
	positive("coverage_cap_multiplier", a.CoverageCapMultiplier)
	positive("coverage_cap_max", a.CoverageCapMax)
	positive("target_loss_ratio", a.TargetLossRatio)

	return errors.Join(errs...)
}

// Overrides is a partial assumption set. Nil fields keep the baseline value.
type Overrides struct {
	BaseBreakRate              *float64 `json:"base_break_rate,omitempty"`
	AdverseSelectionMultiplier *float64 `json:"adverse_selection_multiplier,omitempty"`
	QualifyingEventRate        *float64 `json:"qualifying_event_rate,omitempty"`
	WaitingPeriodSurvival      *float64 `json:"waiting_period_survival,omitempty"`
	DeductibleFilter           *float64 `json:"deductible_filter,omitempty"`
	AvgPenaltyMonths           *float64 `json:"avg_penalty_months,omitempty"`
	Deductible                 *float64 `json:"deductible,omitempty"`
	CoverageCapMultiplier      *float64 `json:"coverage_cap_multiplier,omitempty"`
	CoverageCapMax             *float64 `json:"coverage_cap_max,omitempty"`
	TargetLossRatio            *float64 `json:"target_loss_ratio,omitempty"`
	AnnualChurnRate            *float64 `json:"annual_churn_rate,omitempty"`
}

// Merge returns a copy of a with every non-nil override applied.
func (a Assumptions) Merge(o Overrides) Assumptions {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	out := a
	set(&out.BaseBreakRate, o.BaseBreakRate)
	set(&out.AdverseSelectionMultiplier, o.AdverseSelectionMultiplier)
	set(&out.QualifyingEventRate, o.QualifyingEventRate)
	set(&out.WaitingPeriodSurvival, o.WaitingPeriodSurvival)
	set(&out.DeductibleFilter, o.DeductibleFilter)
	set(&out.AvgPenaltyMonths, o.AvgPenaltyMonths)
	set(&out.Deductible, o.Deductible)
	set(&out.CoverageCapMultiplier, o.CoverageCapMultiplier)
	set(&out.CoverageCapMax, o.CoverageCapMax)
	set(&out.TargetLossRatio, o.TargetLossRatio)
	set(&out.AnnualChurnRate, o.AnnualChurnRate)
	return out
}
