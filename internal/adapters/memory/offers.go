package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"leaseflex/internal/domain"
	"leaseflex/internal/ports"
)

// OfferRepository is an in-memory store for local runs without Postgres.
type OfferRepository struct {
	mu   sync.Mutex
	data map[uuid.UUID]domain.Offer
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{data: make(map[uuid.UUID]domain.Offer)}
}

func (r *OfferRepository) Create(_ context.Context, offer domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[offer.ID] = offer
	return nil
}

func (r *OfferRepository) Get(_ context.Context, id uuid.UUID) (domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.data[id]
	if !ok {
		return domain.Offer{}, domain.ErrOfferNotFound
	}
	return offer, nil
}

func (r *OfferRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OfferStatus, at time.Time) (domain.Offer, error) {
	return r.update(id, func(o *domain.Offer) {
		o.Status = status
		o.UpdatedAt = at
	})
}

func (r *OfferRepository) AttachContact(_ context.Context, id uuid.UUID, fullName, email string, at time.Time) (domain.Offer, error) {
	return r.update(id, func(o *domain.Offer) {
		if fullName != "" {
			o.FullName = &fullName
		}
		o.Email = &email
		o.Status = domain.StatusEmailed
		o.UpdatedAt = at
	})
}

func (r *OfferRepository) update(id uuid.UUID, fn func(o *domain.Offer)) (domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.data[id]
	if !ok {
		return domain.Offer{}, domain.ErrOfferNotFound
	}
	fn(&offer)
	r.data[id] = offer
	return offer, nil
}

// ClaimDue hands out the oldest due offers first.
func (r *OfferRepository) ClaimDue(_ context.Context, c ports.FollowupClaim) ([]ports.FollowupJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []domain.Offer
	for _, o := range r.data {
		if o.Email == nil || o.FollowupStep != c.Step-1 || !o.CreatedAt.Before(c.CreatedBefore) {
			continue
		}
		if o.LastFollowupAt != nil && !o.LastFollowupAt.Before(c.LastSentBefore) {
			continue
		}
		if o.Status != domain.StatusQuoted && o.Status != domain.StatusEmailed {
			continue
		}
		due = append(due, o)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].CreatedAt.Before(due[j].CreatedAt) })
	if c.Limit > 0 && len(due) > c.Limit {
		due = due[:c.Limit]
	}

	jobs := make([]ports.FollowupJob, 0, len(due))
	for _, o := range due {
		job := ports.FollowupJob{OfferID: o.ID, Step: c.Step, Email: *o.Email, PrevSentAt: o.LastFollowupAt}
		at := c.At
		o.FollowupStep = c.Step
		o.LastFollowupAt = &at
		r.data[o.ID] = o
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Release puts the offer back at the step before job.
func (r *OfferRepository) Release(_ context.Context, job ports.FollowupJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.data[job.OfferID]
	if !ok {
		return domain.ErrOfferNotFound
	}
	if o.FollowupStep == job.Step {
		o.FollowupStep = job.Step - 1
		o.LastFollowupAt = job.PrevSentAt
		r.data[o.ID] = o
	}
	return nil
}
