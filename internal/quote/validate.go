package quote

import (
	"strings"

	"github.com/shopspring/decimal"

	"leaseflex/internal/domain"
)

var (
	minRent = decimal.NewFromInt(500)
	maxRent = decimal.NewFromInt(50000)
)

// Validate reports every problem with in. Rules are independent; nothing
// short-circuits. An empty result means in may be passed to Generate.
func Validate(in domain.QuoteInput) domain.ValidationErrors {
	var errs domain.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, domain.ValidationError{Field: field, Message: msg})
	}

	if in.MonthlyRent.LessThan(minRent) || in.MonthlyRent.GreaterThan(maxRent) {
		add("monthly_rent", "Monthly rent must be between $500 and $50,000")
	}
	if strings.TrimSpace(in.Address) == "" {
		add("address", "Rental address is required")
	}
	if strings.TrimSpace(in.City) == "" {
		add("city", "City is required")
	}
	if strings.TrimSpace(in.State) == "" {
		add("state", "State is required")
	}
	if in.LeaseStartDate.IsZero() {
		add("lease_start_date", "Lease start date is required")
	}
	if in.LeaseEndDate.IsZero() {
		add("lease_end_date", "Lease end date is required")
	}
	if !in.LeaseStartDate.IsZero() && !in.LeaseEndDate.IsZero() && !in.LeaseEndDate.After(in.LeaseStartDate) {
		add("lease_end_date", "Lease end date must be after start date")
	}
	if in.EarlyTerminationFeeKnown && in.EarlyTerminationFeeAmount != nil && in.EarlyTerminationFeeAmount.IsNegative() {
		add("early_termination_fee_amount", "Termination fee cannot be negative")
	}
	if in.SubletAllowed != "" && !in.SubletAllowed.Valid() {
		add("sublet_allowed", "Sublet allowed must be yes, no or unknown")
	}

	return errs
}
