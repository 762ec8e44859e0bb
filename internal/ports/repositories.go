package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leaseflex/internal/domain"
)

// OfferRepository stores offers. It is the record of truth for an offer's
// status and contact details.
type OfferRepository interface {
	Create(ctx context.Context, offer domain.Offer) error
	Get(ctx context.Context, id uuid.UUID) (domain.Offer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus, at time.Time) (domain.Offer, error)
	// AttachContact stores the renter's name and email and marks the offer
	// emailed.
	AttachContact(ctx context.Context, id uuid.UUID, fullName, email string, at time.Time) (domain.Offer, error)
}

// FollowupJob is one drip reminder claimed for delivery. PrevSentAt is the
// offer's LastFollowupAt before the claim.
type FollowupJob struct {
	OfferID    uuid.UUID
	Step       int
	Email      string
	PrevSentAt *time.Time
}

// FollowupClaim selects offers due for reminder Step: created before
// CreatedBefore, and last reminded before LastSentBefore if reminded at all.
// Claimed offers are stamped with At.
type FollowupClaim struct {
	Step           int
	CreatedBefore  time.Time
	LastSentBefore time.Time
	At             time.Time
	Limit          int
}

// FollowupRepository claims offers that are due for their next reminder:
// offers with an email, still quoted or emailed, whose previous step is
// step-1 and which match the claim's cutoffs.
// Claiming advances the offer's step, so a claimed job is never handed out
// twice; Release restores the step and stamp after a failed delivery.
type FollowupRepository interface {
	ClaimDue(ctx context.Context, claim FollowupClaim) ([]FollowupJob, error)
	Release(ctx context.Context, job FollowupJob) error
}

// OfferCache holds recently read offers by id. Misses are not errors.
type OfferCache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Offer, bool, error)
	Set(ctx context.Context, offer domain.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoopCache caches nothing. Used when offers live in a store shared with
// other processes and no shared cache is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, uuid.UUID) (domain.Offer, bool, error) {
	return domain.Offer{}, false, nil
}
func (NoopCache) Set(context.Context, domain.Offer) error { return nil }
func (NoopCache) Delete(context.Context, uuid.UUID) error { return nil }

// ClaimRepository stores submitted claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim domain.Claim) error
	Get(ctx context.Context, id uuid.UUID) (domain.Claim, error)
}
