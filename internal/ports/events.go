package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventOfferQuoted        = "offer.quoted"
	EventOfferEmailed       = "offer.emailed"
	EventOfferStatusChanged = "offer.status_changed"
	EventOfferFollowupDue   = "offer.followup_due"
	EventClaimSubmitted     = "claim.submitted"
)

// OfferEvent is an offer or claim lifecycle notification for downstream
// consumers such as the email sender. Claim events carry ClaimID; their
// OfferID is uuid.Nil when the claim is not linked to an offer.
type OfferEvent struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	OfferID    uuid.UUID      `json:"offer_id"`
	ClaimID    *uuid.UUID     `json:"claim_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func NewOfferEvent(eventType string, offerID uuid.UUID, at time.Time, payload map[string]any) OfferEvent {
	return OfferEvent{ID: uuid.New(), Type: eventType, OfferID: offerID, OccurredAt: at.UTC(), Payload: payload}
}

func NewClaimEvent(claimID uuid.UUID, offerID *uuid.UUID, at time.Time, payload map[string]any) OfferEvent {
	evt := NewOfferEvent(EventClaimSubmitted, uuid.Nil, at, payload)
	if offerID != nil {
		evt.OfferID = *offerID
	}
	evt.ClaimID = &claimID
	return evt
}

// Key is the partition key: the claim for claim events, else the offer.
func (e OfferEvent) Key() string {
	if e.ClaimID != nil {
		return e.ClaimID.String()
	}
	return e.OfferID.String()
}

// EventPublisher delivers offer events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...OfferEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...OfferEvent) error { return nil }
