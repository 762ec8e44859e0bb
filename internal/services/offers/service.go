package offers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaseflex/internal/domain"
	"leaseflex/internal/ports"
	"leaseflex/internal/quote"
)

// Recorder receives offer metrics. *observability.Metrics implements it.
type Recorder interface {
	OfferGenerated(o domain.Offer)
	ValidationFailed(fields []string)
	PublishFailed()
}

type nopRecorder struct{}

func (nopRecorder) OfferGenerated(domain.Offer) {}
func (nopRecorder) ValidationFailed([]string)   {}
func (nopRecorder) PublishFailed()              {}

type Service struct {
	engine  *quote.Engine
	offers  ports.OfferRepository
	cache   ports.OfferCache
	events  ports.EventPublisher
	metrics Recorder
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today" for pricing.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithMetrics(r Recorder) Option { return func(s *Service) { s.metrics = r } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

func New(engine *quote.Engine, offers ports.OfferRepository, cache ports.OfferCache, events ports.EventPublisher, opts ...Option) *Service {
	s := &Service{
		engine:  engine,
		offers:  offers,
		cache:   cache,
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

// Quote validates in, prices it, and stores the resulting offer. Validation
// problems come back as domain.ValidationErrors.
func (s *Service) Quote(ctx context.Context, in domain.QuoteInput) (domain.Offer, error) {
	if errs := quote.Validate(in); len(errs) > 0 {
		s.metrics.ValidationFailed(errs.Fields())
		return domain.Offer{}, errs
	}

	now := s.now().UTC()
	offer := s.engine.Generate(in, now)
	offer.ID = uuid.New()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if err := s.offers.Create(ctx, offer); err != nil {
		return domain.Offer{}, fmt.Errorf("store offer: %w", err)
	}
	s.metrics.OfferGenerated(offer)
	s.log.InfoContext(ctx, "offer quoted",
		"offer_id", offer.ID,
		"risk_score", offer.RiskScore,
		"monthly_price", offer.MonthlyPrice.String(),
		"manual_review", offer.RequiresManualReview,
	)

	s.remember(ctx, offer)
	s.publish(ctx, ports.NewOfferEvent(ports.EventOfferQuoted, offer.ID, now, map[string]any{
		"monthly_price":          offer.MonthlyPrice.String(),
		"risk_score":             offer.RiskScore,
		"requires_manual_review": offer.RequiresManualReview,
		"requires_concierge":     offer.RequiresConcierge,
	}))
	return offer, nil
}

// Get returns the offer from cache when possible, falling back to the
// repository and refilling the cache.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
	if offer, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.WarnContext(ctx, "offer cache read failed", "offer_id", id, "error", err)
	} else if ok {
		return offer, nil
	}

	offer, err := s.offers.Get(ctx, id)
	if err != nil {
		return domain.Offer{}, err
	}
	s.remember(ctx, offer)
	return offer, nil
}

// EmailOffer records the renter's contact details and marks the offer as
// emailed. Delivery is left to the email sender consuming the event.
func (s *Service) EmailOffer(ctx context.Context, id uuid.UUID, fullName, email string) (domain.Offer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Offer{}, domain.ErrInvalidEmail
	}
	fullName = strings.TrimSpace(fullName)

	now := s.now().UTC()
	offer, err := s.offers.AttachContact(ctx, id, fullName, email, now)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("attach contact: %w", err)
	}
	s.forget(ctx, id)
	s.publish(ctx, ports.NewOfferEvent(ports.EventOfferEmailed, id, now, map[string]any{
		"email":     email,
		"full_name": fullName,
	}))
	return offer, nil
}

// SetStatus moves the offer to a new lifecycle tag. Any known status may
// follow any other.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus) (domain.Offer, error) {
	if !status.Valid() {
		return domain.Offer{}, domain.ErrInvalidStatus
	}
	now := s.now().UTC()
	offer, err := s.offers.UpdateStatus(ctx, id, status, now)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("update status: %w", err)
	}
	s.forget(ctx, id)
	s.publish(ctx, ports.NewOfferEvent(ports.EventOfferStatusChanged, id, now, map[string]any{
		"status": string(status),
	}))
	return offer, nil
}

func (s *Service) remember(ctx context.Context, offer domain.Offer) {
	if err := s.cache.Set(ctx, offer); err != nil {
		s.log.WarnContext(ctx, "offer cache write failed", "offer_id", offer.ID, "error", err)
	}
}

func (s *Service) forget(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "offer cache delete failed", "offer_id", id, "error", err)
	}
}

// publish is best-effort: the repository already holds the change.
func (s *Service) publish(ctx context.Context, evt ports.OfferEvent) {
	if err := s.events.Publish(ctx, evt); err != nil {
		s.metrics.PublishFailed()
		s.log.ErrorContext(ctx, "offer event publish failed", "offer_id", evt.OfferID, "type", evt.Type, "error", err)
	}
}
