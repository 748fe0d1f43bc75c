package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("chatty"))
}

func TestJSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Environment: "production", Level: "info", Output: &buf})
	log.Component("dataset").WithField("rows", 3).Info("loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "dataset", entry["component"])
	assert.Equal(t, float64(3), entry["rows"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Environment: "production", Level: "warn", Output: &buf})
	log.Info("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithRequest(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Environment: "production", Output: &buf})

	r := httptest.NewRequest("GET", "/api/v1/stats?preset=3m", nil)
	r.Header.Set("X-Request-ID", "req-42")
	log.WithRequest(r).Info("served")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["req_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/v1/stats", entry["path"])

	buf.Reset()
	log.WithRequest(httptest.NewRequest("GET", "/healthz", nil)).Info("served")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Len(t, entry["req_id"], 36)
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Environment: "production", Output: &buf})

	log.WithError(errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)

	assert.NotPanics(t, func() { log.WithError(nil).Info("fine") })
}
