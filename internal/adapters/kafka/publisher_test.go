package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflex/internal/ports"
)

type fakeWriter struct {
	err  error
	msgs []kafkago.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "leaseflex.offers", nil)
	offerID := uuid.New()
	evt := ports.NewOfferEvent(ports.EventOfferQuoted, offerID, time.Now(), map[string]any{"risk_score": 30})

	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, offerID.String(), string(msg.Key))
	assert.Equal(t, []kafkago.Header{
		{Key: "event_type", Value: []byte(ports.EventOfferQuoted)},
		{Key: "event_id", Value: []byte(evt.ID.String())},
	}, msg.Headers)

	var decoded ports.OfferEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.ID, decoded.ID)
	assert.Equal(t, offerID, decoded.OfferID)
}

func TestPublisher_NoEvents(t *testing.T) {
	w := &fakeWriter{err: errors.New("should not be called")}
	p := newPublisher(w, "t", nil)
	assert.NoError(t, p.Publish(context.Background()))
}

func TestPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	p := newPublisher(w, "leaseflex.offers", nil)

	err := p.Publish(context.Background(), ports.NewOfferEvent(ports.EventOfferEmailed, uuid.New(), time.Now(), nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish to leaseflex.offers")
}

func TestPublisher_ClaimEventsKeyedByClaim(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "leaseflex.offers", nil)
	claimID := uuid.New()
	evt := ports.NewClaimEvent(claimID, nil, time.Now(), map[string]any{"event_type": "job_loss"})

	require.NoError(t, p.Publish(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, claimID.String(), string(w.msgs[0].Key))
	assert.Equal(t, []byte(ports.EventClaimSubmitted), w.msgs[0].Headers[0].Value)
}
