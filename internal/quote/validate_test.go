package quote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"leaseflex/internal/domain"
	"leaseflex/internal/quote"
)

func TestValidate_AcceptsValidInput(t *testing.T) {
	assert.Empty(t, quote.Validate(validInput(3000, 244)))
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	in := validInput(300, 244)
	in.City = "   "
	in.LeaseEndDate = in.LeaseStartDate.AddDays(-1)

	errs := quote.Validate(in)

	assert.Equal(t, []string{"monthly_rent", "city", "lease_end_date"}, errs.Fields())
	assert.Equal(t, "Lease end date must be after start date", errs[2].Message)
}

func TestValidate_Rules(t *testing.T) {
	negative := decimal.NewFromInt(-100)
	zero := decimal.Zero

	tests := []struct {
		name   string
		mutate func(in *domain.QuoteInput)
		fields []string
	}{
		{name: "missing rent", mutate: func(in *domain.QuoteInput) { in.MonthlyRent = decimal.Zero }, fields: []string{"monthly_rent"}},
		{name: "rent at floor", mutate: func(in *domain.QuoteInput) { in.MonthlyRent = rent(500) }},
		{name: "rent at ceiling", mutate: func(in *domain.QuoteInput) { in.MonthlyRent = rent(50000) }},
		{name: "rent above ceiling", mutate: func(in *domain.QuoteInput) { in.MonthlyRent = rent(50001) }, fields: []string{"monthly_rent"}},
		{name: "blank address", mutate: func(in *domain.QuoteInput) { in.Address = "\t" }, fields: []string{"address"}},
		{name: "blank state", mutate: func(in *domain.QuoteInput) { in.State = "" }, fields: []string{"state"}},
		{
			name: "missing both dates",
			mutate: func(in *domain.QuoteInput) {
				in.LeaseStartDate = domain.Date{}
				in.LeaseEndDate = domain.Date{}
			},
			fields: []string{"lease_start_date", "lease_end_date"},
		},
		{name: "end equals start", mutate: func(in *domain.QuoteInput) { in.LeaseEndDate = in.LeaseStartDate }, fields: []string{"lease_end_date"}},
		{
			name: "negative known fee",
			mutate: func(in *domain.QuoteInput) {
				in.EarlyTerminationFeeKnown = true
				in.EarlyTerminationFeeAmount = &negative
			},
			fields: []string{"early_termination_fee_amount"},
		},
		{
			name: "zero known fee",
			mutate: func(in *domain.QuoteInput) {
				in.EarlyTerminationFeeKnown = true
				in.EarlyTerminationFeeAmount = &zero
			},
		},
		{name: "negative fee ignored when not known", mutate: func(in *domain.QuoteInput) { in.EarlyTerminationFeeAmount = &negative }},
		{name: "known fee without amount", mutate: func(in *domain.QuoteInput) { in.EarlyTerminationFeeKnown = true }},
		{name: "unknown sublet answer", mutate: func(in *domain.QuoteInput) { in.SubletAllowed = "maybe" }, fields: []string{"sublet_allowed"}},
		{name: "sublet omitted", mutate: func(in *domain.QuoteInput) { in.SubletAllowed = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(3000, 244)
			tt.mutate(&in)

			errs := quote.Validate(in)
			if len(tt.fields) == 0 {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.fields, errs.Fields())
		})
	}
}
