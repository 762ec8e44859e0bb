package quote

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"leaseflex/internal/domain"
)

// Engine prices offers from lease facts under a fixed Policy. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine returns an engine that prices with a private copy of p.
func NewEngine(p Policy) *Engine {
	return &Engine{policy: p.clone()}
}

// Policy returns a copy of the engine's pricing policy.
func (e *Engine) Policy() Policy { return e.policy.clone() }

// MonthsRemaining counts average-length months from today until the lease
// end date, rounded to the nearest whole month. Expired leases yield 0.
func (e *Engine) MonthsRemaining(leaseEnd domain.Date, today time.Time) int {
	diff := leaseEnd.Time().Sub(today)
	months := diff.Hours() / 24 / e.policy.DaysPerMonth
	return int(math.Round(math.Max(0, months)))
}

// RiskScore sums the rent, months, sublet and fee-known points and clamps
// the total to [0, 100]. Higher is riskier.
func (e *Engine) RiskScore(rent decimal.Decimal, monthsRemaining int, sublet domain.SubletAllowed, feeKnown bool) int {
	p := e.policy
	score := 0

	if pts, ok := lookupRent(p.RentPoints, rent); ok {
		score += pts
	}
	if pts, ok := lookupScore(p.MonthsPoints, monthsRemaining); ok {
		score += pts
	}
	if sublet == "" {
		sublet = domain.SubletUnknown
	}
	score += p.SubletPoints[sublet]
	if feeKnown {
		score += p.FeeKnownPoints
	} else {
		score += p.FeeUnknownPoints
	}

	return min(maxScore, max(0, score))
}

// FlexScore is the renter-facing inverse of the risk score.
func FlexScore(riskScore int) int { return maxScore - riskScore }

// MonthlyPrice looks up the base price for the rent band, adds the risk
// add-on for high-rent leases, and applies the price ceiling last.
func (e *Engine) MonthlyPrice(rent decimal.Decimal, riskScore int) decimal.Decimal {
	p := e.policy

	base, ok := lookupRent(p.PriceTiers, rent)
	if !ok && len(p.PriceTiers) > 0 {
		base = p.PriceTiers[0].Value
	}
	price := decimal.NewFromInt(int64(base))

	if rent.GreaterThanOrEqual(p.RiskAddOnThreshold) {
		if addon, ok := lookupScore(p.RiskAddOns, riskScore); ok {
			price = price.Add(decimal.NewFromInt(int64(addon)))
		}
	}

	return decimal.Min(price, p.PriceCeiling)
}

// CoverageCap is the maximum payout for the lease.
func (e *Engine) CoverageCap(rent decimal.Decimal) decimal.Decimal {
	return decimal.Min(rent.Mul(e.policy.CoverageCapMonths), e.policy.CoverageCapMax)
}

// WaitingPeriod returns the days after signup before a claim can be filed.
// Leases close to expiry get the long wait.
func (e *Engine) WaitingPeriod(monthsRemaining int) int {
	if e.requiresManualReview(monthsRemaining) {
		return e.policy.WaitingPeriodLong
	}
	return e.policy.WaitingPeriodShort
}

func (e *Engine) requiresManualReview(monthsRemaining int) bool {
	return monthsRemaining <= e.policy.ManualReviewMonths
}

// Generate builds the offer for a validated input as of today. The same
// input and today always produce the same offer.
//
// Generate does not validate. Callers must run Validate first; an input with
// a non-positive rent or no lease end date panics rather than being priced.
func (e *Engine) Generate(in domain.QuoteInput, today time.Time) domain.Offer {
	if !in.MonthlyRent.IsPositive() || in.LeaseEndDate.IsZero() {
		panic("quote: Generate called with unvalidated input")
	}

	sublet := in.SubletAllowed
	if sublet == "" {
		sublet = domain.SubletUnknown
	}

	months := e.MonthsRemaining(in.LeaseEndDate, today)
	risk := e.RiskScore(in.MonthlyRent, months, sublet, in.EarlyTerminationFeeKnown)

	var feeAmount *decimal.Decimal
	if in.EarlyTerminationFeeAmount != nil {
		amt := *in.EarlyTerminationFeeAmount
		feeAmount = &amt
	}

	return domain.Offer{
		MonthlyRent:          in.MonthlyRent,
		Address:              in.Address,
		City:                 in.City,
		State:                in.State,
		LeaseStartDate:       in.LeaseStartDate,
		LeaseEndDate:         in.LeaseEndDate,
		TerminationFeeKnown:  in.EarlyTerminationFeeKnown,
		TerminationFeeAmount: feeAmount,
		SubletAllowed:        sublet,

		MonthsRemaining:      months,
		RiskScore:            risk,
		FlexScore:            FlexScore(risk),
		MonthlyPrice:         e.MonthlyPrice(in.MonthlyRent, risk),
		CoverageCap:          e.CoverageCap(in.MonthlyRent),
		Deductible:           e.policy.Deductible,
		WaitingPeriodDays:    e.WaitingPeriod(months),
		Status:               domain.StatusQuoted,
		RequiresManualReview: e.requiresManualReview(months),
		RequiresConcierge:    in.MonthlyRent.GreaterThanOrEqual(e.policy.ConciergeRent),
	}
}
