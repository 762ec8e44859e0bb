package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"leaseflex/internal/domain"
)

// Cache is a bounded, expiring offer cache. It is only coherent with a
// store owned by the same process, so pair it with OfferRepository.
type Cache struct {
	lru *expirable.LRU[uuid.UUID, domain.Offer]
}

// NewCache holds at most size offers, each for ttl. A zero ttl never
// expires entries.
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[uuid.UUID, domain.Offer](size, nil, ttl)}
}

func (c *Cache) Get(_ context.Context, id uuid.UUID) (domain.Offer, bool, error) {
	o, ok := c.lru.Get(id)
	return o, ok, nil
}

func (c *Cache) Set(_ context.Context, offer domain.Offer) error {
	c.lru.Add(offer.ID, offer)
	return nil
}

func (c *Cache) Delete(_ context.Context, id uuid.UUID) error {
	c.lru.Remove(id)
	return nil
}

// Len reports how many unexpired offers are held.
func (c *Cache) Len() int { return c.lru.Len() }
