package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"leaseflex/internal/domain"
)

const keyPrefix = "offer:"

// Cache stores offers as JSON under offer:<id> with a fixed TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Get(ctx context.Context, id uuid.UUID) (domain.Offer, bool, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Offer{}, false, nil
	}
	if err != nil {
		return domain.Offer{}, false, err
	}
	var entry cachedOffer
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.Offer{}, false, err
	}
	return entry.offer(), true, nil
}

func (c *Cache) Set(ctx context.Context, offer domain.Offer) error {
	raw, err := json.Marshal(newCachedOffer(offer))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(offer.ID), raw, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, key(id)).Err()
}

func (c *Cache) Close() error { return c.client.Close() }

func key(id uuid.UUID) string { return keyPrefix + id.String() }

// cachedOffer carries the follow-up state, which the public JSON form omits.
type cachedOffer struct {
	domain.Offer
	FollowupStep   int        `json:"followup_step"`
	LastFollowupAt *time.Time `json:"last_followup_at,omitempty"`
}

func newCachedOffer(o domain.Offer) cachedOffer {
	return cachedOffer{Offer: o, FollowupStep: o.FollowupStep, LastFollowupAt: o.LastFollowupAt}
}

func (c cachedOffer) offer() domain.Offer {
	o := c.Offer
	o.FollowupStep = c.FollowupStep
	o.LastFollowupAt = c.LastFollowupAt
	return o
}
