package ports

import (
	"context"

	"github.com/google/uuid"

	"leaseflex/internal/domain"
	"leaseflex/internal/underwriting"
)

// Quotes prices and tracks offers.
type Quotes interface {
	Quote(ctx context.Context, in domain.QuoteInput) (domain.Offer, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Offer, error)
	EmailOffer(ctx context.Context, id uuid.UUID, fullName, email string) (domain.Offer, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus) (domain.Offer, error)
}

// Claims takes in qualifying-event claims.
type Claims interface {
	Submit(ctx context.Context, in domain.ClaimInput) (domain.Claim, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Claim, error)
}

// Underwriting exposes the pricing simulator to operators.
type Underwriting interface {
	FullAnalysis(ctx context.Context) []underwriting.TierAnalysis
	Scenario(ctx context.Context, o underwriting.Overrides) (underwriting.Scenario, error)
}
