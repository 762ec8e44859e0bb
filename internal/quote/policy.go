package quote

import (
	"math"

	"github.com/shopspring/decimal"

	"leaseflex/internal/domain"
)

// RentBand maps a half-open rent range [Min, Max) to a value. A zero Max
// means the band is unbounded above.
type RentBand struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Value int
}

func (b RentBand) contains(rent decimal.Decimal) bool {
	if rent.LessThan(b.Min) {
		return false
	}
	return b.Max.IsZero() || rent.LessThan(b.Max)
}

// ScoreBand maps an inclusive integer range [Min, Max] to a value.
type ScoreBand struct {
	Min   int
	Max   int
	Value int
}

func (b ScoreBand) contains(v int) bool { return v >= b.Min && v <= b.Max }

// Policy holds every pricing and underwriting constant used to build an
// offer. Band lists are ordered and scanned linearly; the first match wins.
type Policy struct {
	RentPoints       []RentBand
	MonthsPoints     []ScoreBand
	SubletPoints     map[domain.SubletAllowed]int
	FeeKnownPoints   int
	FeeUnknownPoints int

	PriceTiers         []RentBand
	RiskAddOnThreshold decimal.Decimal
	RiskAddOns         []ScoreBand
	PriceCeiling       decimal.Decimal

	CoverageCapMonths decimal.Decimal
	CoverageCapMax    decimal.Decimal
	Deductible        decimal.Decimal

	// ManualReviewMonths drives both the manual review flag and the long
	// waiting period.
	ManualReviewMonths int
	WaitingPeriodLong  int
	WaitingPeriodShort int

	ConciergeRent decimal.Decimal

	// DaysPerMonth is an average month length. Calendar months are not used,
	// so counts near a month boundary can differ from naive counting by up
	// to half a month.
	DaysPerMonth float64
}

const maxScore = 100

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// DefaultPolicy returns a fresh copy of the production pricing policy.
func DefaultPolicy() Policy {
	return Policy{
		RentPoints: []RentBand{
			{Min: d(0), Max: d(2000), Value: 5},
			{Min: d(2000), Max: d(4000), Value: 10},
			{Min: d(4000), Max: d(7000), Value: 20},
			{Min: d(7000), Max: d(10000), Value: 30},
			{Min: d(10000), Value: 40},
		},
		MonthsPoints: []ScoreBand{
			{Min: 0, Max: 3, Value: 35},
			{Min: 4, Max: 6, Value: 20},
			{Min: 7, Max: 12, Value: 10},
			{Min: 13, Max: math.MaxInt, Value: 5},
		},
		SubletPoints: map[domain.SubletAllowed]int{
			domain.SubletYes:     -10,
			domain.SubletNo:      10,
			domain.SubletUnknown: 5,
		},
		FeeKnownPoints:   -5,
		FeeUnknownPoints: 5,

		PriceTiers: []RentBand{
			{Min: d(1500), Max: d(3000), Value: 19},
			{Min: d(3000), Max: d(6000), Value: 39},
			{Min: d(6000), Max: d(10000), Value: 79},
			{Min: d(10000), Value: 149},
		},
		RiskAddOnThreshold: d(10000),
		RiskAddOns: []ScoreBand{
			{Min: 70, Max: 100, Value: 20},
			{Min: 50, Max: 69, Value: 10},
			{Min: 30, Max: 49, Value: 5},
			{Min: 0, Max: 29, Value: 0},
		},
		PriceCeiling: d(199),

		CoverageCapMonths: d(1),
		CoverageCapMax:    d(15000),
		Deductible:        d(1500),

		ManualReviewMonths: 3,
		WaitingPeriodLong:  180,
		WaitingPeriodShort: 60,

		ConciergeRent: d(15000),
		DaysPerMonth:  30.44,
	}
}

// clone deep-copies the band tables so an Engine never shares them with the
// caller.
func (p Policy) clone() Policy {
	out := p
	out.RentPoints = append([]RentBand(nil), p.RentPoints...)
	out.MonthsPoints = append([]ScoreBand(nil), p.MonthsPoints...)
	out.PriceTiers = append([]RentBand(nil), p.PriceTiers...)
	out.RiskAddOns = append([]ScoreBand(nil), p.RiskAddOns...)
	out.SubletPoints = make(map[domain.SubletAllowed]int, len(p.SubletPoints))
	for k, v := range p.SubletPoints {
		out.SubletPoints[k] = v
	}
	return out
}

func lookupRent(bands []RentBand, rent decimal.Decimal) (int, bool) {
	for _, b := range bands {
		if b.contains(rent) {
			return b.Value, true
		}
	}
	return 0, false
}

func lookupScore(bands []ScoreBand, v int) (int, bool) {
	for _, b := range bands {
		if b.contains(v) {
			return b.Value, true
		}
	}
	return 0, false
}
