package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Core domain models shared by the pricing core and the service shell.
// Pricing logic lives in internal/quote and internal/underwriting; keep
// these types free of behavior beyond simple value helpers.

type SubletAllowed string

const (
	SubletYes     SubletAllowed = "yes"
	SubletNo      SubletAllowed = "no"
	SubletUnknown SubletAllowed = "unknown"
)

// Valid reports whether s is one of the known sublet answers.
func (s SubletAllowed) Valid() bool {
	switch s {
	case SubletYes, SubletNo, SubletUnknown:
		return true
	}
	return false
}

type OfferStatus string

const (
	StatusQuoted          OfferStatus = "quoted"
	StatusEmailed         OfferStatus = "emailed"
	StatusStartedCheckout OfferStatus = "started_checkout"
	StatusWaitlist        OfferStatus = "waitlist"
)

func (s OfferStatus) Valid() bool {
	switch s {
	case StatusQuoted, StatusEmailed, StatusStartedCheckout, StatusWaitlist:
		return true
	}
	return false
}

// ParseOfferStatus normalizes and checks a status tag.
func ParseOfferStatus(raw string) (OfferStatus, error) {
	s := OfferStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrInvalidStatus = errors.New("invalid offer status")
	ErrInvalidEmail  = errors.New("valid email is required")
)

// QuoteInput is one renter's lease facts as submitted by the intake form.
type QuoteInput struct {
	MonthlyRent               decimal.Decimal  `json:"monthly_rent"`
	Address                   string           `json:"address"`
	City                      string           `json:"city"`
	State                     string           `json:"state"`
	LeaseStartDate            Date             `json:"lease_start_date"`
	LeaseEndDate              Date             `json:"lease_end_date"`
	EarlyTerminationFeeKnown  bool             `json:"early_termination_fee_known"`
	EarlyTerminationFeeAmount *decimal.Decimal `json:"early_termination_fee_amount,omitempty"`
	SubletAllowed             SubletAllowed    `json:"sublet_allowed,omitempty"`
}

// Offer is the priced quote derived from a QuoteInput. The pricing fields are
// computed once and never recalculated; only Status and the contact fields
// change after creation.
type Offer struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FullName  *string   `json:"full_name"`
	Email     *string   `json:"email"`

	MonthlyRent          decimal.Decimal  `json:"monthly_rent"`
	Address              string           `json:"address"`
	City                 string           `json:"city"`
	State                string           `json:"state"`
	LeaseStartDate       Date             `json:"lease_start_date"`
	LeaseEndDate         Date             `json:"lease_end_date"`
	TerminationFeeKnown  bool             `json:"termination_fee_known"`
	TerminationFeeAmount *decimal.Decimal `json:"termination_fee_amount"`
	SubletAllowed        SubletAllowed    `json:"sublet_allowed"`

	MonthsRemaining      int             `json:"months_remaining"`
	RiskScore            int             `json:"risk_score"`
	FlexScore            int             `json:"flex_score"`
	MonthlyPrice         decimal.Decimal `json:"monthly_price"`
	CoverageCap          decimal.Decimal `json:"coverage_cap"`
	Deductible           decimal.Decimal `json:"deductible"`
	WaitingPeriodDays    int             `json:"waiting_period_days"`
	Status               OfferStatus     `json:"status"`
	RequiresManualReview bool            `json:"requires_manual_review"`
	RequiresConcierge    bool            `json:"requires_concierge"`

	// FollowupStep counts drip reminders already emitted for this offer.
	FollowupStep int `json:"-"`
	// LastFollowupAt is when the latest reminder was claimed, nil before the first.
	LastFollowupAt *time.Time `json:"-"`
}
