package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourist-guide/internal/middleware"
)

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/places", nil)
	req.RemoteAddr = addr
	return req
}

// TestRateLimitHandler_BurstThen429 verifies that a client gets exactly burst
// requests through before being limited, and that the 429 uses the JSON
// error envelope.
func TestRateLimitHandler_BurstThen429(t *testing.T) {
	// 0.001 rps: no token refills during the test.
	h := middleware.NewRateLimitHandler(0.001, 3)(trivialHandler)

	for i := range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:6000"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1000", rec.Header().Get("Retry-After"))

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "rate_limited", body.Error.Code)
}

// TestRateLimitHandler_PerClient verifies that one client's exhaustion does
// not affect another client.
func TestRateLimitHandler_PerClient(t *testing.T) {
	h := middleware.NewRateLimitHandler(0.001, 1)(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.2:1"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRateLimitHandler_Disabled verifies that a non-positive rate passes
// everything through.
func TestRateLimitHandler_Disabled(t *testing.T) {
	h := middleware.NewRateLimitHandler(0, 0)(trivialHandler)

	for range 50 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
