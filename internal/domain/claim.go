package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ClaimEventType is the qualifying life event a renter claims for.
type ClaimEventType string

const (
	EventJobRelocation    ClaimEventType = "job_relocation"
	EventJobLoss          ClaimEventType = "job_loss"
	EventMedical          ClaimEventType = "medical"
	EventDomesticViolence ClaimEventType = "domestic_violence"
	EventOther            ClaimEventType = "other"
)

func (e ClaimEventType) Valid() bool {
	switch e {
	case EventJobRelocation, EventJobLoss, EventMedical, EventDomesticViolence, EventOther:
		return true
	}
	return false
}

type ClaimStatus string

// New claims start out submitted; review happens outside this service.
const ClaimSubmitted ClaimStatus = "submitted"

var ErrClaimNotFound = errors.New("claim not found")

// ClaimInput is a renter's claim as submitted by the claims form. OfferID is
// optional; renters may claim before linking their offer.
type ClaimInput struct {
	Email            string         `json:"email"`
	OfferID          *uuid.UUID     `json:"offer_id,omitempty"`
	EventType        ClaimEventType `json:"event_type"`
	EventDescription string         `json:"event_description"`
	EventDate        Date           `json:"event_date"`
}

type Claim struct {
	ID               uuid.UUID      `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	Email            string         `json:"email"`
	OfferID          *uuid.UUID     `json:"offer_id"`
	EventType        ClaimEventType `json:"event_type"`
	EventDescription string         `json:"event_description"`
	EventDate        Date           `json:"event_date"`
	Status           ClaimStatus    `json:"status"`
}
