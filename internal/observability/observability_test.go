package observability_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflex/internal/domain"
	"leaseflex/internal/observability"
)

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	observability.NewLogger(&buf, "info", "json").Info("quote priced", "risk_score", 30)
	assert.Contains(t, buf.String(), `"msg":"quote priced"`)
	assert.Contains(t, buf.String(), `"risk_score":30`)

	buf.Reset()
	observability.NewLogger(&buf, "warn", "text").Info("hidden")
	assert.Empty(t, buf.String())
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.OfferGenerated(domain.Offer{RiskScore: 30})
	m.ValidationFailed([]string{"city", "state"})
	m.FollowupEmitted(2)
	m.PublishFailed()
	m.ClaimSubmitted(domain.EventJobLoss)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `leaseflex_offers_generated_total{concierge="false",manual_review="false"} 1`)
	assert.Contains(t, text, `leaseflex_quote_validation_failures_total{field="city"} 1`)
	assert.Contains(t, text, `leaseflex_followups_emitted_total{step="2"} 1`)
	assert.Contains(t, text, `leaseflex_event_publish_failures_total 1`)
	assert.Contains(t, text, `leaseflex_offer_risk_score_count 1`)
	assert.Contains(t, text, `leaseflex_claims_submitted_total{event_type="job_loss"} 1`)
}
