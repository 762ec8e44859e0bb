package claims

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaseflex/internal/domain"
	"leaseflex/internal/ports"
)

// Recorder receives claim metrics. *observability.Metrics implements it.
type Recorder interface {
	ClaimSubmitted(eventType domain.ClaimEventType)
}

type nopRecorder struct{}

func (nopRecorder) ClaimSubmitted(domain.ClaimEventType) {}

type Service struct {
	claims  ports.ClaimRepository
	offers  ports.OfferRepository
	events  ports.EventPublisher
	metrics Recorder
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithMetrics(r Recorder) Option { return func(s *Service) { s.metrics = r } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

func New(claims ports.ClaimRepository, offers ports.OfferRepository, events ports.EventPublisher, opts ...Option) *Service {
	s := &Service{
		claims:  claims,
		offers:  offers,
		events:  events,
		metrics: nopRecorder{},
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate reports every problem with a claim submission.
func Validate(in domain.ClaimInput) domain.ValidationErrors {
	var errs domain.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, domain.ValidationError{Field: field, Message: msg})
	}

	if email := strings.TrimSpace(in.Email); email == "" || !strings.Contains(email, "@") {
		add("email", "A valid email is required")
	}
	switch {
	case in.EventType == "":
		add("event_type", "Event type is required")
	case !in.EventType.Valid():
		add("event_type", "Invalid event type")
	}
	if strings.TrimSpace(in.EventDescription) == "" {
		add("event_description", "Event description is required")
	}
	if in.EventDate.IsZero() {
		add("event_date", "Event date is required")
	}
	return errs
}

// Submit stores a claim as submitted. A claim naming an offer must name one
// that exists.
func (s *Service) Submit(ctx context.Context, in domain.ClaimInput) (domain.Claim, error) {
	if errs := Validate(in); len(errs) > 0 {
		return domain.Claim{}, errs
	}
	if in.OfferID != nil {
		if _, err := s.offers.Get(ctx, *in.OfferID); err != nil {
			return domain.Claim{}, fmt.Errorf("claim offer %s: %w", in.OfferID, err)
		}
	}

	claim := domain.Claim{
		ID:               uuid.New(),
		CreatedAt:        s.now().UTC(),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		OfferID:          in.OfferID,
		EventType:        in.EventType,
		EventDescription: strings.TrimSpace(in.EventDescription),
		EventDate:        in.EventDate,
		Status:           domain.ClaimSubmitted,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return domain.Claim{}, fmt.Errorf("store claim: %w", err)
	}
	s.metrics.ClaimSubmitted(claim.EventType)
	s.log.InfoContext(ctx, "claim submitted", "claim_id", claim.ID, "event_type", claim.EventType)

	evt := ports.NewClaimEvent(claim.ID, claim.OfferID, claim.CreatedAt, map[string]any{
		"email":      claim.Email,
		"event_type": string(claim.EventType),
		"event_date": claim.EventDate.String(),
	})
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.ErrorContext(ctx, "claim event publish failed", "claim_id", claim.ID, "error", err)
	}
	return claim, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Claim, error) {
	return s.claims.Get(ctx, id)
}
