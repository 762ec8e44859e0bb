package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflex/internal/domain"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("7d4b1f1e-3a43-4f0e-9a7d-1b2c3d4e5f60")
	assert.Equal(t, "offer:7d4b1f1e-3a43-4f0e-9a7d-1b2c3d4e5f60", key(id))
}

func TestCachedOfferRoundTrip(t *testing.T) {
	fee := decimal.NewFromInt(2500)
	o := domain.Offer{
		ID:                   uuid.New(),
		CreatedAt:            time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC),
		MonthlyRent:          decimal.NewFromInt(3000),
		LeaseEndDate:         domain.NewDate(2027, time.June, 14),
		TerminationFeeKnown:  true,
		TerminationFeeAmount: &fee,
		SubletAllowed:        domain.SubletNo,
		MonthlyPrice:         decimal.NewFromInt(39),
		Status:               domain.StatusEmailed,
		FollowupStep:         2,
	}

	raw, err := json.Marshal(newCachedOffer(o))
	require.NoError(t, err)
	var back cachedOffer
	require.NoError(t, json.Unmarshal(raw, &back))
	got := back.offer()

	assert.Equal(t, 2, got.FollowupStep)
	assert.True(t, o.MonthlyRent.Equal(got.MonthlyRent))
	assert.True(t, fee.Equal(*got.TerminationFeeAmount))
	assert.Equal(t, o.LeaseEndDate, got.LeaseEndDate)
	assert.Equal(t, o.Status, got.Status)
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	c := NewCache(m.Addr(), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, m
}

func TestCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, 10*time.Minute)
	require.NoError(t, c.Ping(ctx))

	sent := time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)
	o := domain.Offer{
		ID:             uuid.New(),
		MonthlyRent:    decimal.NewFromInt(3000),
		LeaseEndDate:   domain.NewDate(2027, time.June, 14),
		MonthlyPrice:   decimal.NewFromInt(39),
		Status:         domain.StatusQuoted,
		FollowupStep:   1,
		LastFollowupAt: &sent,
	}

	_, ok, err := c.Get(ctx, o.ID)
	require.NoError(t, err, "a miss is not an error")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, o))
	assert.True(t, m.Exists(key(o.ID)))
	assert.Equal(t, 10*time.Minute, m.TTL(key(o.ID)))

	got, ok, err := c.Get(ctx, o.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, o.ID, got.ID)
	assert.True(t, o.MonthlyPrice.Equal(got.MonthlyPrice))
	assert.Equal(t, 1, got.FollowupStep)
	require.NotNil(t, got.LastFollowupAt)
	assert.True(t, sent.Equal(*got.LastFollowupAt))

	require.NoError(t, c.Delete(ctx, o.ID))
	assert.False(t, m.Exists(key(o.ID)))
	_, ok, err = c.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, time.Minute)
	o := domain.Offer{ID: uuid.New(), Status: domain.StatusEmailed}
	require.NoError(t, c.Set(ctx, o))

	m.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, time.Minute)
	id := uuid.New()
	require.NoError(t, m.Set(key(id), "{not json"))

	_, ok, err := c.Get(ctx, id)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, m := newTestCache(t, time.Minute)
	m.Close()

	assert.Error(t, c.Ping(ctx))
	_, ok, err := c.Get(ctx, uuid.New())
	assert.Error(t, err, "connection errors are not misses")
	assert.False(t, ok)
}
