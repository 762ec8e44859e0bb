package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflex/internal/domain"
)

func TestDate_JSON(t *testing.T) {
	var in struct {
		Start domain.Date `json:"start"`
		End   domain.Date `json:"end"`
		Empty domain.Date `json:"empty"`
	}
	raw := `{"start":"2026-01-01","end":"2026-12-31T15:00:00Z","empty":""}`
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	assert.Equal(t, domain.NewDate(2026, time.January, 1), in.Start)
	assert.Equal(t, domain.NewDate(2026, time.December, 31), in.End)
	assert.True(t, in.Empty.IsZero())

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2026-01-01","end":"2026-12-31","empty":null}`, string(out))
}

func TestDate_MatchesOpenAPIDate(t *testing.T) {
	api := openapi_types.Date{Time: time.Date(2027, time.June, 14, 0, 0, 0, 0, time.UTC)}
	want, err := json.Marshal(api)
	require.NoError(t, err)

	got, err := json.Marshal(domain.NewDate(2027, time.June, 14))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	var back domain.Date
	require.NoError(t, json.Unmarshal(want, &back))
	assert.Equal(t, api.Time, back.Time())
	assert.Equal(t, domain.NewDate(2027, time.June, 24), back.AddDays(10))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d domain.Date
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
}

func TestParseOfferStatus(t *testing.T) {
	s, err := domain.ParseOfferStatus(" Started_Checkout ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStartedCheckout, s)

	_, err = domain.ParseOfferStatus("cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestValidationErrors_Error(t *testing.T) {
	errs := domain.ValidationErrors{
		{Field: "city", Message: "City is required"},
		{Field: "state", Message: "State is required"},
	}
	assert.Equal(t, "invalid quote input: city: City is required; state: State is required", errs.Error())
	assert.Equal(t, []string{"city", "state"}, errs.Fields())
}
