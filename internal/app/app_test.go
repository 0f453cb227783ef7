package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecovision/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	reading := schema.Reading{
		IndicatorId: "co2",
		Priority:    1,
		Measurement: schema.Measurement{
			Value:      421.3,
			Unit:       "ppm",
			ObservedAt: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	s, err := marshalJSON(reading)
	require.NoError(t, err)

	got, err := unmarshalJSON[schema.Reading](s)
	require.NoError(t, err)
	assert.Equal(t, reading.IndicatorId, got.IndicatorId)
	assert.Equal(t, reading.Measurement.Value, got.Measurement.Value)
	assert.True(t, reading.Measurement.ObservedAt.Equal(got.Measurement.ObservedAt))

	_, err = unmarshalJSON[[]string]("{broken")
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	health(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
