package underwriting

import (
	"errors"
	"fmt"
	"math"
)

// Tier is a rent band priced at a single monthly price.
type Tier struct {
	Label        string  `json:"label" mapstructure:"label"`
	RentMin      float64 `json:"rent_min" mapstructure:"rent_min"`
	RentMax      float64 `json:"rent_max" mapstructure:"rent_max"`
	AvgRent      float64 `json:"avg_rent" mapstructure:"avg_rent"`
	CurrentPrice float64 `json:"current_price" mapstructure:"current_price"`
}

var ErrInvalidTier = errors.New("invalid tier")

func (t Tier) Validate() error {
	switch {
	case t.AvgRent <= 0:
		return fmt.Errorf("%w %q: avg_rent must be positive", ErrInvalidTier, t.Label)
	case t.CurrentPrice <= 0:
		return fmt.Errorf("%w %q: current_price must be positive", ErrInvalidTier, t.Label)
	case t.RentMax < t.RentMin:
		return fmt.Errorf("%w %q: rent_max below rent_min", ErrInvalidTier, t.Label)
	}
	return nil
}

// DefaultTiers returns the published pricing tiers.
func DefaultTiers() []Tier {
	return []Tier{
		{Label: "$1.5k–$3k rent", RentMin: 1500, RentMax: 2999, AvgRent: 2250, CurrentPrice: 19},
		{Label: "$3k–$6k rent", RentMin: 3000, RentMax: 5999, AvgRent: 4000, CurrentPrice: 39},
		{Label: "$6k–$10k rent", RentMin: 6000, RentMax: 9999, AvgRent: 7500, CurrentPrice: 79},
		{Label: "$10k+ rent", RentMin: 10000, RentMax: 20000, AvgRent: 12000, CurrentPrice: 149},
	}
}

// TierAnalysis is the loss-ratio and break-even picture for one tier.
// Per-hundred figures are per 100 subscribers per year.
type TierAnalysis struct {
	Tier                 Tier    `json:"tier"`
	CoverageCap          float64 `json:"coverage_cap"`
	AvgPayout            float64 `json:"avg_payout"`
	AnnualClaimRate      float64 `json:"annual_claim_rate"`
	AnnualPremium        float64 `json:"annual_premium"`
	RevenuePerHundred    float64 `json:"revenue_per_hundred"`
	ClaimsPerHundred     float64 `json:"claims_per_hundred"`
	ClaimsCostPerHundred float64 `json:"claims_cost_per_hundred"`
	LossRatio            float64 `json:"loss_ratio"`
	BreakEvenPrice       float64 `json:"break_even_price"`
	// MaxSafeClaimRate is nil when the average payout is zero, since then no
	// claim rate breaches the target loss ratio.
	MaxSafeClaimRate *float64 `json:"max_safe_claim_rate"`
}

// AnnualClaimRate chains the five factors as independent probabilities.
func AnnualClaimRate(a Assumptions) float64 {
	return a.BaseBreakRate *
		a.AdverseSelectionMultiplier *
		a.QualifyingEventRate *
		a.WaitingPeriodSurvival *
		a.DeductibleFilter
}

// CoverageCap is the payout cap for a lease at the given rent.
func CoverageCap(rent float64, a Assumptions) float64 {
	return math.Min(rent*a.CoverageCapMultiplier, a.CoverageCapMax)
}

// AvgPayout is the expected payout of one claim at avgRent. The deductible
// comes off after capping and the result never goes below zero.
func AvgPayout(avgRent float64, a Assumptions) float64 {
	penalty := avgRent * a.AvgPenaltyMonths
	claimAmount := math.Min(penalty, CoverageCap(avgRent, a))
	return math.Max(0, claimAmount-a.Deductible)
}

// BreakEvenPrice is the monthly price that hits the target loss ratio,
// rounded up to the next whole unit.
func BreakEvenPrice(avgPayout, claimRate float64, a Assumptions) float64 {
	return math.Ceil(avgPayout * claimRate / a.TargetLossRatio / 12)
}

func AnalyzeTier(tier Tier, a Assumptions) TierAnalysis {
	claimRate := AnnualClaimRate(a)
	avgPayout := AvgPayout(tier.AvgRent, a)
	annualPremium := tier.CurrentPrice * 12

	revenue := 100 * annualPremium
	claims := 100 * claimRate
	claimsCost := claims * avgPayout

	out := TierAnalysis{
		Tier:                 tier,
		CoverageCap:          CoverageCap(tier.AvgRent, a),
		AvgPayout:            avgPayout,
		AnnualClaimRate:      claimRate,
		AnnualPremium:        annualPremium,
		RevenuePerHundred:    revenue,
		ClaimsPerHundred:     claims,
		ClaimsCostPerHundred: claimsCost,
		LossRatio:            claimsCost / revenue,
		BreakEvenPrice:       BreakEvenPrice(avgPayout, claimRate, a),
	}
	if avgPayout > 0 {
		safe := annualPremium * a.TargetLossRatio / avgPayout
		out.MaxSafeClaimRate = &safe
	}
	return out
}
