package quote_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflex/internal/domain"
	"leaseflex/internal/quote"
)

var today = time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)

func rent(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func endIn(days int) domain.Date { return domain.DateOf(today).AddDays(days) }

func validInput(monthlyRent int64, endDays int) domain.QuoteInput {
	return domain.QuoteInput{
		MonthlyRent:    rent(monthlyRent),
		Address:        "123 Main St",
		City:           "Austin",
		State:          "TX",
		LeaseStartDate: domain.DateOf(today).AddDays(-200),
		LeaseEndDate:   endIn(endDays),
		SubletAllowed:  domain.SubletUnknown,
	}
}

func TestGenerate_EndToEndExample(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	offer := engine.Generate(validInput(3000, 244), today)

	assert.Equal(t, 8, offer.MonthsRemaining)
	// 10 (rent) + 10 (months) + 5 (sublet unknown) + 5 (fee unknown)
	assert.Equal(t, 30, offer.RiskScore)
	assert.Equal(t, 70, offer.FlexScore)
	assert.Equal(t, 60, offer.WaitingPeriodDays)
	assert.False(t, offer.RequiresManualReview)
	assert.False(t, offer.RequiresConcierge)
	assert.True(t, offer.CoverageCap.Equal(rent(3000)), "coverage cap %s", offer.CoverageCap)
	assert.True(t, offer.MonthlyPrice.Equal(rent(39)), "price %s", offer.MonthlyPrice)
	assert.True(t, offer.Deductible.Equal(rent(1500)))
	assert.Equal(t, domain.StatusQuoted, offer.Status)
	assert.Equal(t, "Austin", offer.City)
	assert.Nil(t, offer.TerminationFeeAmount)
}

func TestGenerate_WaitingPeriodBoundary(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	t.Run("3 months is long wait and manual review", func(t *testing.T) {
		offer := engine.Generate(validInput(3000, 91), today)
		require.Equal(t, 3, offer.MonthsRemaining)
		assert.Equal(t, 180, offer.WaitingPeriodDays)
		assert.True(t, offer.RequiresManualReview)
	})

	t.Run("4 months is short wait without review", func(t *testing.T) {
		offer := engine.Generate(validInput(3000, 122), today)
		require.Equal(t, 4, offer.MonthsRemaining)
		assert.Equal(t, 60, offer.WaitingPeriodDays)
		assert.False(t, offer.RequiresManualReview)
	})
}

func TestMonthsRemaining(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	tests := []struct {
		name     string
		days     int
		expected int
	}{
		{name: "expired lease floors at zero", days: -45, expected: 0},
		{name: "ends today", days: 0, expected: 0},
		{name: "half month rounds up", days: 16, expected: 1},
		{name: "just under half month rounds down", days: 15, expected: 0},
		{name: "one year", days: 365, expected: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.MonthsRemaining(endIn(tt.days), today))
		})
	}
}

func TestRiskScore(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	tests := []struct {
		name     string
		rent     int64
		months   int
		sublet   domain.SubletAllowed
		feeKnown bool
		expected int
	}{
		{name: "lowest risk clamps at zero", rent: 1500, months: 24, sublet: domain.SubletYes, feeKnown: true, expected: 0},
		{name: "highest risk", rent: 20000, months: 2, sublet: domain.SubletNo, feeKnown: false, expected: 90},
		{name: "rent 1999 is lowest band", rent: 1999, months: 12, sublet: domain.SubletUnknown, expected: 5 + 10 + 5 + 5},
		{name: "rent 2000 is second band", rent: 2000, months: 12, sublet: domain.SubletUnknown, expected: 10 + 10 + 5 + 5},
		{name: "rent 7000", rent: 7000, months: 6, sublet: domain.SubletNo, feeKnown: true, expected: 30 + 20 + 10 - 5},
		{name: "rent 10000", rent: 10000, months: 13, sublet: domain.SubletYes, expected: 40 + 5 - 10 + 5},
		{name: "empty sublet reads as unknown", rent: 4000, months: 7, sublet: "", expected: 20 + 10 + 5 + 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.RiskScore(rent(tt.rent), tt.months, tt.sublet, tt.feeKnown))
		})
	}
}

func TestRiskScore_ClampsAboveHundred(t *testing.T) {
	p := quote.DefaultPolicy()
	p.SubletPoints[domain.SubletNo] = 80
	engine := quote.NewEngine(p)

	assert.Equal(t, 100, engine.RiskScore(rent(20000), 1, domain.SubletNo, false))
}

func TestMonthlyPrice(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	tests := []struct {
		name     string
		rent     decimal.Decimal
		risk     int
		expected int64
	}{
		{name: "below lowest band uses lowest price", rent: rent(900), risk: 90, expected: 19},
		{name: "top of first band", rent: decimal.RequireFromString("2999.99"), risk: 50, expected: 19},
		{name: "second band", rent: rent(3000), risk: 50, expected: 39},
		{name: "third band ignores risk", rent: rent(9999), risk: 90, expected: 79},
		{name: "high rent low risk", rent: rent(10000), risk: 29, expected: 149},
		{name: "high rent moderate risk", rent: rent(10000), risk: 30, expected: 154},
		{name: "high rent elevated risk", rent: rent(12000), risk: 69, expected: 159},
		{name: "high rent top risk", rent: rent(12000), risk: 70, expected: 169},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.MonthlyPrice(tt.rent, tt.risk)
			assert.True(t, got.Equal(rent(tt.expected)), "got %s want %d", got, tt.expected)
		})
	}
}

func TestMonthlyPrice_CeilingWins(t *testing.T) {
	p := quote.DefaultPolicy()
	p.PriceCeiling = rent(160)
	engine := quote.NewEngine(p)

	// 149 + 20 would be 169.
	got := engine.MonthlyPrice(rent(12000), 90)
	assert.True(t, got.Equal(rent(160)), "got %s", got)

	// Exactly at the ceiling is kept.
	p.PriceCeiling = rent(169)
	got = quote.NewEngine(p).MonthlyPrice(rent(12000), 90)
	assert.True(t, got.Equal(rent(169)), "got %s", got)
}

func TestCoverageCap(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	assert.True(t, engine.CoverageCap(rent(3000)).Equal(rent(3000)))
	assert.True(t, engine.CoverageCap(rent(15000)).Equal(rent(15000)))
	assert.True(t, engine.CoverageCap(rent(40000)).Equal(rent(15000)))
}

func TestGenerate_Invariants(t *testing.T) {
	p := quote.DefaultPolicy()
	engine := quote.NewEngine(p)

	rents := []int64{500, 1499, 1500, 1999, 2000, 3999, 4000, 6999, 7000, 9999, 10000, 14999, 15000, 25000, 50000}
	endDays := []int{-30, 0, 30, 91, 92, 122, 183, 365, 730}
	sublets := []domain.SubletAllowed{domain.SubletYes, domain.SubletNo, domain.SubletUnknown}

	for _, r := range rents {
		for _, days := range endDays {
			for _, s := range sublets {
				for _, fee := range []bool{true, false} {
					in := validInput(r, days)
					in.SubletAllowed = s
					in.EarlyTerminationFeeKnown = fee

					offer := engine.Generate(in, today)

					assert.Equal(t, 100, offer.RiskScore+offer.FlexScore)
					assert.GreaterOrEqual(t, offer.RiskScore, 0)
					assert.LessOrEqual(t, offer.RiskScore, 100)
					assert.GreaterOrEqual(t, offer.MonthsRemaining, 0)
					assert.True(t, offer.MonthlyPrice.LessThanOrEqual(p.PriceCeiling))
					assert.True(t, offer.CoverageCap.LessThanOrEqual(p.CoverageCapMax))
					assert.True(t, offer.CoverageCap.LessThanOrEqual(in.MonthlyRent.Mul(p.CoverageCapMonths)))
					assert.Equal(t, offer.RequiresManualReview, offer.WaitingPeriodDays == 180)
				}
			}
		}
	}
}

func TestGenerate_Flags(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	assert.True(t, engine.Generate(validInput(15000, 365), today).RequiresConcierge)
	assert.False(t, engine.Generate(validInput(14999, 365), today).RequiresConcierge)

	expired := engine.Generate(validInput(3000, -10), today)
	assert.Equal(t, 0, expired.MonthsRemaining)
	assert.True(t, expired.RequiresManualReview)
}

func TestGenerate_CopiesFeeAmount(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())
	fee := rent(2500)
	in := validInput(3000, 244)
	in.EarlyTerminationFeeKnown = true
	in.EarlyTerminationFeeAmount = &fee

	offer := engine.Generate(in, today)

	require.NotNil(t, offer.TerminationFeeAmount)
	assert.True(t, offer.TerminationFeeAmount.Equal(fee))
	assert.NotSame(t, &fee, offer.TerminationFeeAmount)
	assert.True(t, offer.TerminationFeeKnown)
}

func TestGenerate_Deterministic(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())
	in := validInput(8200, 150)

	assert.Equal(t, engine.Generate(in, today), engine.Generate(in, today))
}

func TestGenerate_PanicsOnUnvalidatedInput(t *testing.T) {
	engine := quote.NewEngine(quote.DefaultPolicy())

	assert.Panics(t, func() { engine.Generate(domain.QuoteInput{}, today) })

	in := validInput(3000, 100)
	in.MonthlyRent = rent(-1)
	assert.Panics(t, func() { engine.Generate(in, today) })
}

func TestNewEngine_CopiesPolicy(t *testing.T) {
	p := quote.DefaultPolicy()
	engine := quote.NewEngine(p)

	p.PriceTiers[1].Value = 1
	p.SubletPoints[domain.SubletNo] = 0

	assert.True(t, engine.MonthlyPrice(rent(3000), 0).Equal(rent(39)))
	assert.Equal(t, 10, engine.Policy().SubletPoints[domain.SubletNo])
}
