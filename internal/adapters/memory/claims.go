package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"leaseflex/internal/domain"
)

type ClaimRepository struct {
	mu   sync.Mutex
	data map[uuid.UUID]domain.Claim
}

func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{data: make(map[uuid.UUID]domain.Claim)}
}

func (r *ClaimRepository) Create(_ context.Context, claim domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[claim.ID] = claim
	return nil
}

func (r *ClaimRepository) Get(_ context.Context, id uuid.UUID) (domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	return c, nil
}
