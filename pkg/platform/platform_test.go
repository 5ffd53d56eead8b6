package platform

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("VALUATION_TEST_STR", "abc")
	t.Setenv("VALUATION_TEST_INT", "42")
	t.Setenv("VALUATION_TEST_BAD_INT", "x")
	t.Setenv("VALUATION_TEST_DUR", "45s")

	assert.Equal(t, "abc", GetEnv("VALUATION_TEST_STR", "d"))
	assert.Equal(t, "d", GetEnv("VALUATION_TEST_UNSET", "d"))
	assert.Equal(t, 42, GetEnvInt("VALUATION_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("VALUATION_TEST_BAD_INT", 1))
	assert.Equal(t, 45*time.Second, GetEnvDuration("VALUATION_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("VALUATION_TEST_UNSET", time.Second))
}

func TestInitLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := InitLogger(&buf, "warn", LogFormatJSON)
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Str("field", "investment").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "investment", entry["field"])
}

func TestInitLoggerDefaultsAndErrors(t *testing.T) {
	logger, err := InitLogger(&bytes.Buffer{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	_, err = InitLogger(&bytes.Buffer{}, "loud", LogFormatJSON)
	assert.Error(t, err)

	_, err = InitLogger(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestAPIKeyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{"disabled", "", "", http.StatusNoContent},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"wrong key", "secret", "nope", http.StatusUnauthorized},
		{"valid key", "secret", "secret", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			APIKeyMiddleware(tt.key)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
